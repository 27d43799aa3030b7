package menu

import (
	"errors"

	"wulf-order-services/internal/cart"
)

var ErrCategoryNotFound = errors.New("category not found")

type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Composition []string  `json:"composition"`
	Nutrition   Nutrition `json:"nutrition"`
	VideoURL    string    `json:"videoUrl,omitempty"`
}

type CategoryPage struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Products []Product `json:"products"`
}

var categoryPages = map[string]CategoryPage{
	"smoothies": {
		Slug:  "smoothies",
		Title: "Smoothies",
		Products: []Product{{
			ID: 1, Name: "Strawberry Blast", Price: "Rp 25.000", Image: "/products/strawberry-smoothie.png",
			Composition: []string{"Strawberry", "Yogurt", "Honey", "Ice"},
			Nutrition:   Nutrition{Calories: "150", Protein: "5g", Carbs: "30g", Fat: "2g"},
			VideoURL:    "https://www.youtube.com/embed/example1",
		}},
	},
	"coffee": {
		Slug:  "coffee",
		Title: "Coffee",
		Products: []Product{{
			ID: 1, Name: "Espresso", Price: "Rp 18.000", Image: "/products/espresso.png",
			Composition: []string{"Arabica Coffee Beans", "Water"},
			Nutrition:   Nutrition{Calories: "5", Protein: "0g", Carbs: "1g", Fat: "0g"},
			VideoURL:    "https://www.youtube.com/embed/example2",
		}},
	},
	"mocktail": {
		Slug:  "mocktail",
		Title: "Mocktail",
		Products: []Product{{
			ID: 1, Name: "Mojito Mocktail", Price: "Rp 32.000", Image: "/products/mojito-mocktail.png",
			Composition: []string{"Lime", "Mint Leaves", "Soda Water", "Sugar"},
			Nutrition:   Nutrition{Calories: "120", Protein: "0g", Carbs: "28g", Fat: "0g"},
			VideoURL:    "https://www.youtube.com/embed/example3",
		}},
	},
	"snacks": {
		Slug:  "snacks",
		Title: "Snacks",
		Products: []Product{{
			ID: 1, Name: "Chicken Pop", Price: "Rp 15.000", Image: "/series/chickenpop.png",
			Composition: []string{"Chicken Breast", "Bread Crumbs", "Spices", "Oil"},
			Nutrition:   Nutrition{Calories: "280", Protein: "18g", Carbs: "20g", Fat: "12g"},
			VideoURL:    "https://www.youtube.com/embed/example4",
		}},
	},
}

// Category returns the page for slug. An unknown slug, or one without
// products, is ErrCategoryNotFound.
func Category(slug string) (CategoryPage, error) {
	page, ok := categoryPages[slug]
	if !ok || len(page.Products) == 0 {
		return CategoryPage{}, ErrCategoryNotFound
	}
	page.Products = append([]Product(nil), page.Products...)
	return page, nil
}

func (p CategoryPage) Product(id int64) (Product, bool) {
	for _, product := range p.Products {
		if product.ID == id {
			return product, true
		}
	}
	return Product{}, false
}

// CartItem converts the product into a cart line. Product ids restart at one in
// every category, which is why the cart keys on (id, category).
func (p Product) CartItem(slug string, quantity int) cart.Item {
	return cart.Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    ParseRupiah(p.Price),
		Image:    p.Image,
		Category: slug,
		Quantity: quantity,
	}
}
