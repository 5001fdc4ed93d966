package tools

import (
	"strings"

	"github.com/hupe1980/tripmesh/core"
)

// cityData bundles everything the tools know about one destination.
type cityData struct {
	Name   string
	Places []core.POI
	Hotels []core.HotelOption
}

var cities = map[string]cityData{
	"bangalore": {
		Name: "Bangalore",
		Places: []core.POI{
			{ID: "place_blr_1", Name: "Bangalore Palace", Category: "historical", Address: "Palace Road, Vasanth Nagar, Bengaluru", Rating: 4.2, Lat: 12.9984, Lng: 77.5930, Highlight: "Tudor-style royal palace with sprawling gardens."},
			{ID: "place_blr_2", Name: "Lalbagh Botanical Garden", Category: "nature", Address: "Mavalli, Bengaluru", Rating: 4.5, Lat: 12.9507, Lng: 77.5848, Highlight: "240-acre garden around a glass house modeled on Crystal Palace."},
			{ID: "place_blr_3", Name: "Cubbon Park", Category: "nature", Address: "Kasturba Road, Bengaluru", Rating: 4.5, Lat: 12.9763, Lng: 77.5929, Highlight: "Green lung of the city, best in the early morning."},
			{ID: "place_blr_4", Name: "Vidhana Soudha", Category: "historical", Address: "Dr Ambedkar Veedhi, Bengaluru", Rating: 4.5, Lat: 12.9794, Lng: 77.5912, Highlight: "Neo-Dravidian seat of the state legislature, lit up on Sundays."},
			{ID: "place_blr_5", Name: "ISKCON Temple Bangalore", Category: "religious", Address: "Hare Krishna Hill, Rajajinagar, Bengaluru", Rating: 4.6, Lat: 13.0108, Lng: 77.5511, Highlight: "Hilltop temple complex with evening aarti."},
		},
		Hotels: []core.HotelOption{
			{ID: "hotel_blr_1", Name: "Taj West End", Type: "hotel", Rating: 4.7, PricePerNight: 15000, Currency: "INR", Address: "23, Race Course Road, High Grounds, Bengaluru"},
			{ID: "hotel_blr_2", Name: "ITC Gardenia", Type: "hotel", Rating: 4.6, PricePerNight: 12000, Currency: "INR", Address: "Residency Road, Bengaluru"},
			{ID: "hotel_blr_3", Name: "The Oberoi Bengaluru", Type: "hotel", Rating: 4.8, PricePerNight: 18000, Currency: "INR", Address: "37-39, MG Road, Bengaluru"},
		},
	},
	"mumbai": {
		Name: "Mumbai",
		Places: []core.POI{
			{ID: "place_bom_1", Name: "Gateway of India", Category: "historical", Address: "Apollo Bandar, Colaba, Mumbai", Rating: 4.5, Lat: 18.9220, Lng: 72.8347, Highlight: "Iconic basalt arch overlooking the harbour."},
			{ID: "place_bom_2", Name: "Marine Drive", Category: "scenic", Address: "Netaji Subhash Chandra Bose Road, Mumbai", Rating: 4.7, Lat: 18.9432, Lng: 72.8238, Highlight: "3 km seafront promenade, the Queen's Necklace at night."},
			{ID: "place_bom_3", Name: "Chhatrapati Shivaji Terminus", Category: "historical", Address: "Fort, Mumbai", Rating: 4.5, Lat: 18.9402, Lng: 72.8356, Highlight: "Victorian Gothic railway station and UNESCO site."},
			{ID: "place_bom_4", Name: "Elephanta Caves", Category: "historical", Address: "Gharapuri Island, Mumbai Harbour", Rating: 4.4, Lat: 18.9633, Lng: 72.9315, Highlight: "Rock-cut cave temples reached by ferry from the Gateway."},
			{ID: "place_bom_5", Name: "Juhu Beach", Category: "beach", Address: "Juhu, Mumbai", Rating: 4.2, Lat: 19.0988, Lng: 72.8267, Highlight: "Street food stalls and sunset crowds."},
		},
		Hotels: []core.HotelOption{
			{ID: "hotel_bom_1", Name: "The Taj Mahal Palace", Type: "hotel", Rating: 4.8, PricePerNight: 22000, Currency: "INR", Address: "Apollo Bandar, Colaba, Mumbai"},
			{ID: "hotel_bom_2", Name: "Trident Nariman Point", Type: "hotel", Rating: 4.6, PricePerNight: 14000, Currency: "INR", Address: "Nariman Point, Mumbai"},
			{ID: "hotel_bom_3", Name: "Hotel Marine Plaza", Type: "hotel", Rating: 4.3, PricePerNight: 9000, Currency: "INR", Address: "Marine Drive, Mumbai"},
		},
	},
	"delhi": {
		Name: "Delhi",
		Places: []core.POI{
			{ID: "place_del_1", Name: "India Gate", Category: "historical", Address: "Rajpath, New Delhi", Rating: 4.6, Lat: 28.6129, Lng: 77.2295, Highlight: "War memorial arch at the heart of Lutyens' Delhi."},
			{ID: "place_del_2", Name: "Red Fort", Category: "historical", Address: "Netaji Subhash Marg, Chandni Chowk, New Delhi", Rating: 4.5, Lat: 28.6562, Lng: 77.2410, Highlight: "Mughal fortress of red sandstone, sound-and-light show in the evening."},
			{ID: "place_del_3", Name: "Qutub Minar", Category: "historical", Address: "Mehrauli, New Delhi", Rating: 4.5, Lat: 28.5245, Lng: 77.1855, Highlight: "73 m victory tower from 1193, UNESCO site."},
			{ID: "place_del_4", Name: "Humayun's Tomb", Category: "historical", Address: "Mathura Road, Nizamuddin East, New Delhi", Rating: 4.6, Lat: 28.5933, Lng: 77.2507, Highlight: "Garden tomb that inspired the Taj Mahal."},
			{ID: "place_del_5", Name: "Lotus Temple", Category: "religious", Address: "Bahapur, Kalkaji, New Delhi", Rating: 4.5, Lat: 28.5535, Lng: 77.2588, Highlight: "Flowerlike Bahai house of worship, open to all faiths."},
		},
		Hotels: []core.HotelOption{
			{ID: "hotel_del_1", Name: "The Imperial", Type: "hotel", Rating: 4.7, PricePerNight: 16000, Currency: "INR", Address: "Janpath, New Delhi"},
			{ID: "hotel_del_2", Name: "The Leela Palace New Delhi", Type: "hotel", Rating: 4.8, PricePerNight: 21000, Currency: "INR", Address: "Diplomatic Enclave, Chanakyapuri, New Delhi"},
			{ID: "hotel_del_3", Name: "Bloomrooms @ New Delhi", Type: "hotel", Rating: 4.2, PricePerNight: 5500, Currency: "INR", Address: "Link Road, Jangpura Extension, New Delhi"},
		},
	},
}

// defaultCity is used when no known destination can be derived from the query.
const defaultCity = "bangalore"

var placeReviews = map[string][]core.Review{
	"Bangalore Palace": {
		{Author: "HistoryBuff88", Text: "The audio guide brings the palace to life. Do not skip the upstairs galleries.", Rating: 5, Sentiment: "positive"},
		{Author: "WeekendWanderer", Text: "Beautiful architecture but the entry fee for cameras feels steep.", Rating: 4, Sentiment: "positive"},
		{Author: "LocalExplorer", Text: "Crowded on weekends, go on a weekday morning.", Rating: 3, Sentiment: "neutral"},
	},
	"Gateway of India": {
		{Author: "Traveler123", Text: "Best visited at sunrise before the crowds and the heat arrive.", Rating: 5, Sentiment: "positive"},
		{Author: "FerryFan", Text: "Great starting point for the Elephanta ferry, the arch itself takes ten minutes.", Rating: 4, Sentiment: "positive"},
	},
	"India Gate": {
		{Author: "EveningStroller", Text: "Lovely in the evening with the lawns full of families and ice cream carts.", Rating: 5, Sentiment: "positive"},
		{Author: "PhotoHunter", Text: "Hard to park nearby, take the metro to Central Secretariat.", Rating: 4, Sentiment: "positive"},
	},
	"Taj West End": {
		{Author: "GardenLover", Text: "The heritage wing and the gardens are worth the price alone.", Rating: 5, Sentiment: "positive"},
		{Author: "BusinessTraveler", Text: "Excellent business facilities and a convenient location.", Rating: 4, Sentiment: "positive"},
	},
}

// genericReviews backs reviews.get for places without curated entries, so the
// tool never returns an empty payload for a known trip.
var genericReviews = []core.Review{
	{Author: "FrequentFlyer", Text: "Worth a stop if you are in the area.", Rating: 4, Sentiment: "positive"},
	{Author: "CasualVisitor", Text: "Decent experience, though it can get busy in peak season.", Rating: 3, Sentiment: "neutral"},
}

// matchCity resolves free text (a user query or an explicit destination) to a
// known city key. Returns defaultCity when nothing matches, mirroring the
// lenient lookup travellers expect from a demo dataset.
func matchCity(text string) string {
	lower := strings.ToLower(text)
	for key := range cities {
		if strings.Contains(lower, key) {
			return key
		}
	}
	// Common aliases.
	switch {
	case strings.Contains(lower, "bengaluru"):
		return "bangalore"
	case strings.Contains(lower, "bombay"):
		return "mumbai"
	case strings.Contains(lower, "new delhi"):
		return "delhi"
	}
	return defaultCity
}

// lookupCoordinates finds the lat/lng for a named place or hotel across all
// cities. The second return reports whether the name was known.
func lookupCoordinates(name string) (lat, lng float64, ok bool) {
	for _, city := range cities {
		for _, p := range city.Places {
			if strings.EqualFold(p.Name, name) {
				return p.Lat, p.Lng, true
			}
		}
	}
	return 0, 0, false
}
