package migration

import "github.com/avstrong/lodgix/internal/booking"

//nolint:funlen,lll // sample data
func SampleHotels() []*booking.Hotel {
	return []*booking.Hotel{
		{
			ID:        "1",
			Name:      "Grand Hyatt Mumbai",
			Address:   "Off Western Express Highway, Mumbai",
			Type:      "hotel",
			Rating:    4.7,
			Reviews:   1245,
			Stars:     5,
			Amenities: []string{"Free WiFi", "Swimming Pool", "Spa", "Restaurant", "Gym", "Parking", "Airport Shuttle"},
			Price:     12500,
			Discount:  15,
			Image:     "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=1200&q=80",
			Images: []string{
				"https://images.unsplash.com/photo-1566073771259-6a8506099945?w=1200&q=80",
				"https://images.unsplash.com/photo-1582719508461-905c673771fd?w=1200&q=80",
				"https://images.unsplash.com/photo-1596394516093-501ba68a0ba6?w=1200&q=80",
			},
			Description: "Experience luxury at Grand Hyatt Mumbai, a 5-star hotel offering world-class amenities and exceptional service. Perfectly located for both business and leisure travelers.",
			Facilities: []booking.Facility{
				{Name: "Rooms", Details: "547 luxurious rooms and suites"},
				{Name: "Dining", Details: "4 restaurants offering global cuisines"},
				{Name: "Wellness", Details: "Full-service spa and 24/7 fitness center"},
			},
			RoomTypes: []booking.RoomType{
				{ID: "ordinary", Name: "Ordinary Room", Price: 8500, Description: "Comfortable room with essential amenities"},
				{ID: "deluxe", Name: "Deluxe Room", Price: 12500, Description: "Spacious room with premium amenities and city view"},
				{ID: "presidential", Name: "Presidential Suite", Price: 35000, Description: "Luxurious suite with separate living area and premium services"},
			},
		},
		{
			ID:        "2",
			Name:      "Taj Lands End",
			Address:   "Bandra West, Mumbai",
			Type:      "hotel",
			Rating:    4.8,
			Reviews:   2310,
			Stars:     5,
			Amenities: []string{"Free WiFi", "Swimming Pool", "Spa", "Restaurant", "Beach View", "Parking"},
			Price:     18900,
			Discount:  20,
			Image:     "https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=1200&q=80",
			Images: []string{
				"https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=1200&q=80",
				"https://images.unsplash.com/photo-1611892440504-42a792e24d32?w=1200&q=80",
			},
			Description: "Overlooking the Arabian Sea, Taj Lands End offers breathtaking views and legendary hospitality. A landmark of luxury in the queen of suburbs.",
			Facilities: []booking.Facility{
				{Name: "Rooms", Details: "493 sea-facing rooms and suites"},
				{Name: "Dining", Details: "Award-winning restaurants and a vibrant bar"},
				{Name: "Events", Details: "Extensive banquet and conference facilities"},
			},
			RoomTypes: []booking.RoomType{
				{ID: "ordinary", Name: "Sea View Room", Price: 12000, Description: "Comfortable room with sea view"},
				{ID: "deluxe", Name: "Deluxe Sea View", Price: 18900, Description: "Spacious room with panoramic sea views"},
				{ID: "presidential", Name: "Presidential Suite", Price: 45000, Description: "Ultra-luxurious suite with private balcony and butler service"},
			},
		},
		{
			ID:        "3",
			Name:      "The Leela Palace",
			Address:   "Sahar, Mumbai",
			Type:      "resort",
			Rating:    4.6,
			Reviews:   1876,
			Stars:     5,
			Amenities: []string{"Free WiFi", "Swimming Pool", "Spa", "Restaurant", "Airport Shuttle", "Gym"},
			Price:     21500,
			Discount:  10,
			Image:     "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=1200&q=80",
			Images: []string{
				"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=1200&q=80",
				"https://images.unsplash.com/photo-1590073242678-70ee3fc28e8e?w=1200&q=80",
				"https://images.unsplash.com/photo-1618773928121-c32242e63f39?w=1200&q=80",
			},
			Description: "An oasis of tranquility, The Leela Palace is set amidst acres of lush gardens. It combines modern luxury with traditional Indian aesthetics.",
			Facilities: []booking.Facility{
				{Name: "Rooms", Details: "394 elegantly appointed rooms"},
				{Name: "Pool", Details: "Lagoon-style swimming pool"},
				{Name: "Spa", Details: "ESPA, a world-renowned wellness center"},
			},
			RoomTypes: []booking.RoomType{
				{ID: "ordinary", Name: "Garden View Room", Price: 15000, Description: "Comfortable room overlooking the gardens"},
				{ID: "deluxe", Name: "Deluxe Garden View", Price: 21500, Description: "Spacious room with garden views and premium amenities"},
				{ID: "presidential", Name: "Royal Suite", Price: 55000, Description: "Opulent suite with private pool and personalized butler service"},
			},
		},
	}
}
