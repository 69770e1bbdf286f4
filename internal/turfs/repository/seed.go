package repository

import "github.com/Prasi710/Turffy/pkg/model"

// SeedTurfs is the launch catalog. Entries are immutable at runtime;
// onboarding a new turf means shipping a new catalog.
func SeedTurfs() []*model.Turf {
	return []*model.Turf{
		{
			ID:           "turf-001",
			Name:         "PlayGround Arena",
			City:         "Mumbai",
			Location:     "Andheri West",
			PricePerHour: 1500,
			Images: []string{
				"https://images.unsplash.com/photo-1529900748604-07564a03e7a6?w=800",
				"https://images.unsplash.com/photo-1551958219-acbc608c6377?w=800",
				"https://images.unsplash.com/photo-1624880357913-a8539238245b?w=800",
			},
			Amenities: []string{"Floodlights", "Parking", "Changing Room", "Washroom"},
			Rating:    4.5,
			Surface:   "Artificial Grass",
		},
		{
			ID:           "turf-002",
			Name:         "Champions Turf",
			City:         "Mumbai",
			Location:     "Bandra East",
			PricePerHour: 2000,
			Images: []string{
				"https://images.unsplash.com/photo-1577223625816-7546f8977065?w=800",
				"https://images.unsplash.com/photo-1459865264687-595d652de67e?w=800",
				"https://images.unsplash.com/photo-1543326727-cf6c39e8f84c?w=800",
			},
			Amenities: []string{"Floodlights", "Parking", "Changing Room", "Cafeteria", "First Aid"},
			Rating:    4.8,
			Surface:   "Natural Grass",
		},
		{
			ID:           "turf-003",
			Name:         "Sports Hub",
			City:         "Delhi",
			Location:     "Dwarka",
			PricePerHour: 1200,
			Images: []string{
				"https://images.unsplash.com/photo-1487466365202-1afdb86c764e?w=800",
				"https://images.unsplash.com/photo-1560272564-c83b66b1ad12?w=800",
				"https://images.unsplash.com/photo-1574629810360-7efbbe195018?w=800",
			},
			Amenities: []string{"Floodlights", "Parking", "Washroom"},
			Rating:    4.3,
			Surface:   "Artificial Grass",
		},
		{
			ID:           "turf-004",
			Name:         "Victory Ground",
			City:         "Bangalore",
			Location:     "Koramangala",
			PricePerHour: 1800,
			Images: []string{
				"https://images.unsplash.com/photo-1431324155629-1a6deb1dec8d?w=800",
				"https://images.unsplash.com/photo-1489944440615-453fc2b6a9a9?w=800",
				"https://images.unsplash.com/photo-1518604666860-9ed391f76460?w=800",
			},
			Amenities: []string{"Floodlights", "Parking", "Changing Room", "Washroom", "Cafeteria"},
			Rating:    4.6,
			Surface:   "Hybrid Grass",
		},
		{
			ID:           "turf-005",
			Name:         "Elite Sports Arena",
			City:         "Bangalore",
			Location:     "Whitefield",
			PricePerHour: 2200,
			Images: []string{
				"https://images.unsplash.com/photo-1522778119026-d647f0596c20?w=800",
				"https://images.unsplash.com/photo-1575361204480-aadea25e6e68?w=800",
				"https://images.unsplash.com/photo-1486286701208-1d58e9338013?w=800",
			},
			Amenities: []string{"Floodlights", "Parking", "Changing Room", "Washroom", "Cafeteria", "Pro Shop"},
			Rating:    4.9,
			Surface:   "Premium Artificial Grass",
		},
		{
			ID:           "turf-006",
			Name:         "Goal Kick Arena",
			City:         "Delhi",
			Location:     "Rohini",
			PricePerHour: 1000,
			Images: []string{
				"https://images.unsplash.com/photo-1508098682722-e99c43a406b2?w=800",
				"https://images.unsplash.com/photo-1556056504-5c7696c4c28d?w=800",
				"https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=800",
			},
			Amenities: []string{"Floodlights", "Parking", "Washroom"},
			Rating:    4.1,
			Surface:   "Artificial Grass",
		},
	}
}
