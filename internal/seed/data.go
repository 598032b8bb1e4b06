package seed

import (
	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

var sampleMenu = []model.MenuItem{
	{
		Name:            "Paneer Tikka",
		Description:     "Marinated cottage cheese cubes grilled with spices",
		Category:        model.CategoryAppetizer,
		Price:           decimal.NewFromInt(280),
		Ingredients:     model.Ingredients{"Paneer", "Yogurt", "Spices"},
		PreparationTime: 20,
		ImageURL:        "https://images.unsplash.com/photo-1567188040759-fb8a883dc6d8?w=400",
	},
	{
		Name:            "Chicken Tikka",
		Description:     "Tender chicken grilled in tandoor",
		Category:        model.CategoryAppetizer,
		Price:           decimal.NewFromInt(320),
		Ingredients:     model.Ingredients{"Chicken", "Yogurt", "Spices"},
		PreparationTime: 25,
		ImageURL:        "https://www.whiskaffair.com/wp-content/uploads/2020/06/Chicken-Tikka-2-3.jpg",
	},
	{
		Name:            "Samosa",
		Description:     "Crispy fried pastry with potato filling",
		Category:        model.CategoryAppetizer,
		Price:           decimal.NewFromInt(80),
		Ingredients:     model.Ingredients{"Potatoes", "Flour"},
		PreparationTime: 15,
		ImageURL:        "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=400",
	},
	{
		Name:            "Butter Chicken",
		Description:     "Chicken cooked in creamy tomato gravy",
		Category:        model.CategoryMainCourse,
		Price:           decimal.NewFromInt(350),
		Ingredients:     model.Ingredients{"Chicken", "Butter", "Cream"},
		PreparationTime: 30,
		ImageURL:        "https://images.unsplash.com/photo-1603894584373-5ac82b2ae398?w=400",
	},
	{
		Name:            "Chicken Biryani",
		Description:     "Fragrant rice with spiced chicken",
		Category:        model.CategoryMainCourse,
		Price:           decimal.NewFromInt(320),
		Ingredients:     model.Ingredients{"Rice", "Chicken"},
		PreparationTime: 45,
		ImageURL:        "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=400",
	},
	{
		Name:            "Paneer Butter Masala",
		Description:     "Paneer in rich creamy gravy",
		Category:        model.CategoryMainCourse,
		Price:           decimal.NewFromInt(280),
		Ingredients:     model.Ingredients{"Paneer", "Cream"},
		PreparationTime: 25,
		ImageURL:        "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?w=400",
	},
	{
		Name:            "Dal Makhani",
		Description:     "Slow-cooked black lentils with butter",
		Category:        model.CategoryMainCourse,
		Price:           decimal.NewFromInt(220),
		Ingredients:     model.Ingredients{"Lentils", "Butter"},
		PreparationTime: 35,
		ImageURL:        "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=400",
	},
	{
		Name:            "Gulab Jamun",
		Description:     "Sweet milk dumplings in syrup",
		Category:        model.CategoryDessert,
		Price:           decimal.NewFromInt(120),
		Ingredients:     model.Ingredients{"Khoya", "Sugar"},
		PreparationTime: 10,
		ImageURL:        "https://static.toiimg.com/thumb/63799510.cms?width=800",
	},
	{
		Name:            "Mango Lassi",
		Description:     "Refreshing mango yogurt drink",
		Category:        model.CategoryBeverage,
		Price:           decimal.NewFromInt(100),
		Ingredients:     model.Ingredients{"Yogurt", "Mango"},
		PreparationTime: 5,
		ImageURL:        "https://images.unsplash.com/photo-1626200419199-391ae4be7a41?w=400",
	},
}

// メニューの添字で参照するサンプル注文
type sampleLine struct {
	menuIndex int
	quantity  int
}

type sampleOrder struct {
	customerName string
	tableNumber  int
	status       model.OrderStatus
	lines        []sampleLine
}

var sampleOrders = []sampleOrder{
	{
		customerName: "Rahul Sharma",
		tableNumber:  5,
		status:       model.OrderStatusDelivered,
		lines:        []sampleLine{{menuIndex: 0, quantity: 2}, {menuIndex: 3, quantity: 1}},
	},
	{
		customerName: "Priya Patel",
		tableNumber:  3,
		status:       model.OrderStatusPreparing,
		lines:        []sampleLine{{menuIndex: 4, quantity: 1}},
	},
}
