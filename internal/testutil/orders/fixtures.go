package orders

// Fixture is a predefined set of export rows.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Orders returns a copy of the fixture rows.
	Orders() []Order
}

type fixture struct {
	name   string
	orders []Order
}

func (f *fixture) Name() string    { return f.name }
func (f *fixture) Orders() []Order { return append([]Order(nil), f.orders...) }

// Predefined fixtures for common test scenarios.
var (
	// FixtureMarch2024 covers every derived column: deals, gifts, KOLs,
	// foreign provinces, a blank created time and unparsable numbers.
	FixtureMarch2024 Fixture = &fixture{
		name: "March 2024",
		orders: []Order{
			{
				ID: "A1", Product: "[DEAL SPECIAL50] Ensure Gold 850g", Province: "Tỉnh Đắk Lắk",
				Warehouse: "Kho (HCM)", Created: "05/03/2024 10:15:00", Quantity: "2",
				SubtotalBefore: "1000000", SellerDiscount: "100000", PlatformDiscount: "45000", SubtotalAfter: "855000",
			},
			{
				ID: "A2", Product: "Combo Similac 5G 900g Can", Province: "Thành phố Hà Nội",
				Warehouse: "Kho HN", Created: "14/03/2024 08:00:00", Quantity: "1",
				SubtotalBefore: "500000", SellerDiscount: "0", PlatformDiscount: "0", SubtotalAfter: "500000",
			},
			{
				ID: "A3", Product: "PediaSure 1.6kg - Quyền Leo", Province: "서울",
				Warehouse: "Kho Miền Tây", Created: "31/03/2024 23:59:59", Quantity: "abc",
				SubtotalBefore: "\t300000", SubtotalAfter: "300000",
			},
			{
				ID: "A4", Product: "[Tặng bình giữ nhiệt] Glucerna 400g", Province: "Long An",
				Quantity: "0", SubtotalBefore: "0", SellerDiscount: "0", PlatformDiscount: "0", SubtotalAfter: "0",
			},
			{
				ID: "A5", Product: "COMBO 4 LỐC (24 CHAI) SỮA NƯỚC GLUCERNA HƯƠNG VANI", Province: "Tan An",
				Warehouse: "Bách Hóa Sữa Bột 2", Created: "21/03/2024 12:00:00", Quantity: "4",
				SubtotalBefore: "800000", SellerDiscount: "80000", PlatformDiscount: "72000", SubtotalAfter: "648000",
			},
		},
	}

	// FixtureDomestic holds two plain orders with Vietnamese provinces only,
	// so no translation is ever needed.
	FixtureDomestic Fixture = &fixture{
		name: "Domestic",
		orders: []Order{
			{
				ID: "D1", Product: "Sữa Grow 180ml thùng 48", Province: "Hà Nội",
				Warehouse: "Kho (HCM)", Created: "05/03/2024 10:00:00", Quantity: "1",
				SubtotalBefore: "400000", SubtotalAfter: "380000",
			},
			{
				ID: "D2", Product: "Ensure Gold 850g", Province: "Tỉnh Đắk Lắk",
				Warehouse: "Kho Hà Nội", Created: "06/03/2024 11:30:00", Quantity: "2",
				SubtotalBefore: "1200000", SubtotalAfter: "1150000",
			},
		},
	}

	// FixtureBadTimestamp has a created time in the wrong layout on row 2.
	FixtureBadTimestamp Fixture = &fixture{
		name: "Bad Timestamp",
		orders: []Order{
			{ID: "B1", Product: "Grow 180ml", Province: "Hà Nội", Warehouse: "Kho", Created: "05/03/2024 10:00:00"},
			{ID: "B2", Product: "Grow 180ml", Province: "Hà Nội", Warehouse: "Kho", Created: "2024-03-05 10:00"},
		},
	}
)
