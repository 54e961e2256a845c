package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
)

// Seed loads the Delhi demo dataset. It does nothing when the store already
// has users, so a restored snapshot is never overwritten.
func Seed(ctx context.Context, s Store) (bool, error) {
	existing, err := s.ListUsers(ctx, UserFilter{})
	if err != nil {
		return false, fmt.Errorf("failed to inspect store before seeding: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	users, products, orders, transactions := demoData()
	for i := range users {
		if err := s.CreateUser(ctx, &users[i]); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", users[i].ID, err)
		}
	}
	for i := range products {
		if err := s.CreateProduct(ctx, &products[i]); err != nil {
			return false, fmt.Errorf("failed to seed product %s: %w", products[i].ID, err)
		}
	}
	for i := range orders {
		if err := s.CreateOrder(ctx, &orders[i]); err != nil {
			return false, fmt.Errorf("failed to seed order %s: %w", orders[i].ID, err)
		}
	}
	for i := range transactions {
		if err := s.CreateTransaction(ctx, &transactions[i]); err != nil {
			return false, fmt.Errorf("failed to seed transaction %s: %w", transactions[i].ID, err)
		}
	}
	return true, nil
}

func demoData() ([]model.User, []model.Product, []model.Order, []model.Transaction) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	coord := func(lat, lng float64) (*float64, *float64) { return &lat, &lng }

	vendor := func(id, name, email, phone, business, location string, lat, lng float64, vt model.VendorType) model.User {
		la, lo := coord(lat, lng)
		return model.User{ID: id, Name: name, Email: email, Phone: phone, Role: model.RoleVendor,
			BusinessName: business, Location: location, Latitude: la, Longitude: lo, VendorType: vt,
			IsActive: true, CreatedAt: joined}
	}
	supplier := func(id, name, email, phone, business, location string, lat, lng float64) model.User {
		la, lo := coord(lat, lng)
		return model.User{ID: id, Name: name, Email: email, Phone: phone, Role: model.RoleSupplier,
			BusinessName: business, Location: location, Latitude: la, Longitude: lo,
			IsActive: true, CreatedAt: joined}
	}

	users := []model.User{
		// demo login accounts, no stored password hash
		{ID: "1", Name: "Demo Vendor", Email: "vendor@demo.com", Role: model.RoleVendor, IsActive: true, CreatedAt: joined},
		{ID: "2", Name: "Demo Supplier", Email: "supplier@demo.com", Role: model.RoleSupplier, IsActive: true, CreatedAt: joined},

		vendor("vendor_demo_1", "Rajesh Kumar", "rajesh@vendor.com", "+91 98765 43210", "Central Food Corner", "Zone A - Central Market, Delhi", 28.6139, 77.209, model.VendorStreet),
		vendor("vendor_demo_2", "Priya Sharma", "priya@vendor.com", "+91 87654 32109", "Fresh Market Hub", "Zone B - North Delhi", 28.7041, 77.1025, model.VendorGrocery),
		vendor("vendor_demo_3", "Amit Gupta", "amit@restaurant.com", "+91 76543 21098", "Spice Route Restaurant", "Connaught Place, Delhi", 28.6315, 77.2167, model.VendorRestaurant),
		vendor("vendor_demo_4", "Sunita Devi", "sunita@cafe.com", "+91 65432 10987", "Morning Brew Cafe", "Khan Market, Delhi", 28.5984, 77.2319, model.VendorCafe),
		vendor("vendor_demo_5", "Ravi Singh", "ravi@foodtruck.com", "+91 54321 09876", "Delhi Delights Food Truck", "India Gate, Delhi", 28.6129, 77.2295, model.VendorFoodTruck),
		vendor("vendor_demo_6", "Meera Patel", "meera@bakery.com", "+91 43210 98765", "Golden Crust Bakery", "Lajpat Nagar, Delhi", 28.5677, 77.2431, model.VendorBakery),

		supplier("supplier_demo_1", "Amit Singh", "amit@supplier.com", "+91 76543 21098", "Fresh Produce Co.", "Wholesale Market, Delhi", 28.6304, 77.2177),
		supplier("supplier_demo_2", "Sunita Devi", "sunita@supplier.com", "+91 65432 10987", "Grain Masters", "Agricultural Hub, Punjab", 28.6692, 77.4538),
		supplier("supplier_demo_3", "Ravi Patel", "ravi@supplier.com", "+91 54321 09876", "Organic Farms", "Gurgaon, Haryana", 28.4595, 77.0266),
		supplier("supplier_demo_4", "Meera Gupta", "meera@supplier.com", "+91 43210 98765", "Spice World", "Faridabad, Haryana", 28.4089, 77.3178),
		supplier("supplier_demo_5", "Vikram Singh", "vikram@supplier.com", "+91 32109 87654", "Mountain Fresh", "Noida, UP", 28.5355, 77.391),
		supplier("supplier_demo_6", "Kavita Sharma", "kavita@supplier.com", "+91 21098 76543", "Dairy Delights", "Rohtak, Haryana (Far)", 28.8955, 76.6066),
	}

	products := []model.Product{
		{ID: "prod_demo_1", Name: "Fresh Tomatoes", Price: 40, Unit: "kg", Category: "Vegetables", SupplierID: "supplier_demo_1", InStock: true, Icon: "🍅", Color: "from-red-400 to-red-600", Description: "Fresh, ripe tomatoes perfect for cooking", MinQuantity: 1},
		{ID: "prod_demo_2", Name: "Red Onions", Price: 30, Unit: "kg", Category: "Vegetables", SupplierID: "supplier_demo_1", InStock: true, Icon: "🧅", Color: "from-purple-400 to-purple-600", Description: "Premium quality red onions", MinQuantity: 1},
		{ID: "prod_demo_3", Name: "Potatoes", Price: 25, Unit: "kg", Category: "Vegetables", SupplierID: "supplier_demo_1", InStock: true, Icon: "🥔", Color: "from-yellow-400 to-orange-500", Description: "Fresh potatoes, great for all cooking needs", MinQuantity: 1},
		{ID: "prod_demo_4", Name: "Basmati Rice", Price: 80, Unit: "kg", Category: "Grains", SupplierID: "supplier_demo_2", InStock: true, Icon: "🌾", Color: "from-amber-400 to-orange-500", Description: "Premium basmati rice, aged for perfect aroma", MinQuantity: 5},
		{ID: "prod_demo_5", Name: "Wheat Flour", Price: 45, Unit: "kg", Category: "Grains", SupplierID: "supplier_demo_2", InStock: true, Icon: "🌾", Color: "from-yellow-500 to-orange-600", Description: "Fine quality wheat flour for all baking needs", MinQuantity: 2},
		{ID: "prod_demo_6", Name: "Green Chilies", Price: 60, Unit: "kg", Category: "Vegetables", SupplierID: "supplier_demo_1", InStock: true, Icon: "🌶️", Color: "from-green-400 to-green-600", Description: "Fresh green chilies with perfect heat", MinQuantity: 1},
		{ID: "prod_demo_7", Name: "Organic Carrots", Price: 50, Unit: "kg", Category: "Vegetables", SupplierID: "supplier_demo_3", InStock: true, Icon: "🥕", Color: "from-orange-400 to-orange-600", Description: "Organic carrots grown without pesticides", MinQuantity: 1},
		{ID: "prod_demo_8", Name: "Turmeric Powder", Price: 120, Unit: "kg", Category: "Spices", SupplierID: "supplier_demo_4", InStock: true, Icon: "🟡", Color: "from-yellow-600 to-orange-700", Description: "Pure turmeric powder with high curcumin content", MinQuantity: 1},
		{ID: "prod_demo_9", Name: "Fresh Milk", Price: 60, Unit: "liter", Category: "Dairy", SupplierID: "supplier_demo_6", InStock: true, Icon: "🥛", Color: "from-blue-200 to-blue-400", Description: "Fresh cow milk delivered daily", MinQuantity: 1},
	}

	item := func(productID string, qty int, price float64, name string) model.OrderItem {
		return model.OrderItem{ProductID: productID, Quantity: qty, Price: price, Name: name, Unit: "kg"}
	}
	// historic orders predate checkout fees, so subtotal and total match
	order := func(id, vendorID, supplierID string, total float64, status model.OrderStatus, address string, pm model.PaymentMethod, created, updated string, items ...model.OrderItem) model.Order {
		return model.Order{ID: id, VendorID: vendorID, SupplierID: supplierID, Items: items,
			Subtotal: total, Total: total, Status: status, DeliveryOption: model.DeliveryStandard,
			DeliveryAddress: address, PaymentMethod: pm, CreatedAt: at(created), UpdatedAt: at(updated)}
	}
	const (
		centralAddr = "Central Food Corner, Zone A - Central Market, Delhi"
		hubAddr     = "Fresh Market Hub, Zone B - North Delhi"
	)

	orders := []model.Order{
		order("order_demo_1", "vendor_demo_1", "supplier_demo_1", 410, model.OrderDelivered, centralAddr, model.PaymentCOD,
			"2024-01-15T10:30:00Z", "2024-01-16T14:30:00Z",
			item("prod_demo_1", 5, 40, "Fresh Tomatoes"), item("prod_demo_2", 3, 30, "Red Onions"), item("prod_demo_6", 2, 60, "Green Chilies")),
		order("order_demo_2", "vendor_demo_1", "supplier_demo_2", 1025, model.OrderOutForDelivery, centralAddr, model.PaymentUPI,
			"2024-01-18T09:15:00Z", "2024-01-18T16:45:00Z",
			item("prod_demo_4", 10, 80, "Basmati Rice"), item("prod_demo_5", 5, 45, "Wheat Flour")),
		order("order_demo_3", "vendor_demo_2", "supplier_demo_1", 570, model.OrderPreparing, hubAddr, model.PaymentWallet,
			"2024-01-19T11:20:00Z", "2024-01-19T15:30:00Z",
			item("prod_demo_1", 8, 40, "Fresh Tomatoes"), item("prod_demo_3", 10, 25, "Potatoes")),
		order("order_demo_4", "vendor_demo_2", "supplier_demo_2", 1200, model.OrderAccepted, hubAddr, model.PaymentCOD,
			"2024-01-20T08:45:00Z", "2024-01-20T10:15:00Z",
			item("prod_demo_4", 15, 80, "Basmati Rice")),
		order("order_demo_5", "vendor_demo_1", "supplier_demo_1", 530, model.OrderPending, centralAddr, model.PaymentWallet,
			"2024-01-21T13:30:00Z", "2024-01-21T13:30:00Z",
			item("prod_demo_2", 5, 30, "Red Onions"), item("prod_demo_3", 8, 25, "Potatoes"), item("prod_demo_6", 3, 60, "Green Chilies")),
	}

	transactions := []model.Transaction{
		{ID: "txn_demo_1", OrderID: "order_demo_1", SupplierID: "supplier_demo_1", VendorID: "vendor_demo_1",
			Amount: 410, Commission: 20.5, NetAmount: 389.5, Status: model.TransactionCompleted,
			PaymentMethod: "UPI", CreatedAt: at("2024-01-16T14:30:00Z")},
	}

	return users, products, orders, transactions
}
