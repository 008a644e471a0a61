package catalog

import "errors"

// Item is one entry on the menu. Prices are in NT$ with no fractional part.
type Item struct {
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	ImageRef  string `json:"image_ref"`
}

const (
	NumCategories    = 3
	ItemsPerCategory = 3
)

// ErrInvalidIndex is returned when a category or item index does not exist on the menu.
var ErrInvalidIndex = errors.New("catalog: category or item index out of range")

var categories = [NumCategories]string{"蛋餅類", "鍋燒類", "總匯類"}

// The menu is fixed at build time. There is no load or refresh path.
var menu = [NumCategories][ItemsPerCategory]Item{
	{
		{Name: "原味蛋餅", UnitPrice: 30, ImageRef: "https://www.macc.com.tw/data/goods/gallery/202111/1637313718335422967.jpg"},
		{Name: "蔬菜蛋餅", UnitPrice: 30, ImageRef: "https://d3l76hx23vw40a.cloudfront.net/recipe/aa007-042a.jpg"},
		{Name: "玉米蛋餅", UnitPrice: 30, ImageRef: "https://www.macc.com.tw/data/goods/gallery/202111/1637313752147218648.jpg"},
	},
	{
		{Name: "鍋 燒 粥", UnitPrice: 40, ImageRef: "https://d1ralsognjng37.cloudfront.net/f225c79e-d16d-4b04-a2d9-69f73321174c.jpeg"},
		{Name: "鍋燒意麵", UnitPrice: 50, ImageRef: "https://blogger.googleusercontent.com/img/b/R29vZ2xl/AVvXsEi88Qx9PG3oUFkBns4XSGKAGvXrAI28ecSIH7r5lBUSBXKNL9JfiGmK6GrRV36YEnajCAXP0q65DRqUGo5syv0z0_y3wBmpYmzpt7PXlg07Rg0J_346So1zZGclGukklww3APCTiSfUw-5E88qvWtXlEI7tlymbpgUWLJkAqKiE3kVOuGHTEU6FpNlsgQ/s1600/00-1.jpg"},
		{Name: "鍋燒雞絲", UnitPrice: 50, ImageRef: "https://cdn-ak.f.st-hatena.com/images/fotolife/y/yasumarutaiwan/20211216/20211216155458.jpg"},
	},
	{
		{Name: "豬肉總匯", UnitPrice: 60, ImageRef: "https://www.hongya88.com.tw/Content/Upload/Picture/Food/浮水印/0弘爺漢堡早餐菜單-招牌總匯-大.png"},
		{Name: "雞肉總匯", UnitPrice: 70, ImageRef: "https://d3l76hx23vw40a.cloudfront.net/recipe/webp/bk44-035a.webp"},
		{Name: "里肌總匯", UnitPrice: 80, ImageRef: "https://i.imgur.com/WifJsHK.jpeg"},
	},
}

// Categories returns the category names in display order.
func Categories() []string {
	return categories[:]
}

// Validate reports whether (category, item) addresses a menu entry.
func Validate(category, item int) error {
	if category < 0 || category >= NumCategories || item < 0 || item >= ItemsPerCategory {
		return ErrInvalidIndex
	}
	return nil
}

// Items returns the items of one category in display order.
func Items(category int) ([]Item, error) {
	if category < 0 || category >= NumCategories {
		return nil, ErrInvalidIndex
	}
	items := make([]Item, ItemsPerCategory)
	copy(items, menu[category][:])
	return items, nil
}

// Lookup returns a single menu entry.
func Lookup(category, item int) (Item, error) {
	if err := Validate(category, item); err != nil {
		return Item{}, err
	}
	return menu[category][item], nil
}
