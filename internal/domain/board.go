package domain

// DefaultBoard returns the built-in seed table of purchasable spaces:
// the classic US street names with flat base rents. Positions without an
// entry (GO, taxes, jail, chance and community spots) have no landing
// effect. Deployments can override the table via data/board.json.
func DefaultBoard() []PropertySpace {
	return []PropertySpace{
		{Position: 1, Name: "Mediterranean Avenue", Price: 60, Rent: 2},
		{Position: 3, Name: "Baltic Avenue", Price: 60, Rent: 4},
		{Position: 5, Name: "Reading Railroad", Price: 200, Rent: 25},
		{Position: 6, Name: "Oriental Avenue", Price: 100, Rent: 6},
		{Position: 8, Name: "Vermont Avenue", Price: 100, Rent: 6},
		{Position: 9, Name: "Connecticut Avenue", Price: 120, Rent: 8},
		{Position: 11, Name: "St. Charles Place", Price: 140, Rent: 10},
		{Position: 12, Name: "Electric Company", Price: 150, Rent: 4},
		{Position: 13, Name: "States Avenue", Price: 140, Rent: 10},
		{Position: 14, Name: "Virginia Avenue", Price: 160, Rent: 12},
		{Position: 15, Name: "Pennsylvania Railroad", Price: 200, Rent: 25},
		{Position: 16, Name: "St. James Place", Price: 180, Rent: 14},
		{Position: 18, Name: "Tennessee Avenue", Price: 180, Rent: 14},
		{Position: 19, Name: "New York Avenue", Price: 200, Rent: 16},
		{Position: 21, Name: "Kentucky Avenue", Price: 220, Rent: 18},
		{Position: 23, Name: "Indiana Avenue", Price: 220, Rent: 18},
		{Position: 24, Name: "Illinois Avenue", Price: 240, Rent: 20},
		{Position: 25, Name: "B. & O. Railroad", Price: 200, Rent: 25},
		{Position: 26, Name: "Atlantic Avenue", Price: 260, Rent: 22},
		{Position: 27, Name: "Ventnor Avenue", Price: 260, Rent: 22},
		{Position: 28, Name: "Water Works", Price: 150, Rent: 4},
		{Position: 29, Name: "Marvin Gardens", Price: 280, Rent: 24},
		{Position: 31, Name: "Pacific Avenue", Price: 300, Rent: 26},
		{Position: 32, Name: "North Carolina Avenue", Price: 300, Rent: 26},
		{Position: 34, Name: "Pennsylvania Avenue", Price: 320, Rent: 28},
		{Position: 35, Name: "Short Line", Price: 200, Rent: 25},
		{Position: 37, Name: "Park Place", Price: 350, Rent: 35},
		{Position: 39, Name: "Boardwalk", Price: 400, Rent: 50},
	}
}
