package geo

// Location is one entry of the static location catalog.
type Location struct {
	Country string  `json:"country"`
	Region  string  `json:"region"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Catalog holds the locations a simulated visitor can originate from.
// Read-only reference data, never mutated at runtime.
var Catalog = [...]Location{
	{Country: "US", Region: "California", City: "Los Angeles", Lat: 34.0522, Lon: -118.2437},
	{Country: "US", Region: "New York", City: "New York", Lat: 40.7128, Lon: -74.0060},
	{Country: "US", Region: "Texas", City: "Austin", Lat: 30.2672, Lon: -97.7431},
	{Country: "US", Region: "Washington", City: "Seattle", Lat: 47.6062, Lon: -122.3321},
	{Country: "GB", Region: "England", City: "London", Lat: 51.5074, Lon: -0.1278},
	{Country: "GB", Region: "England", City: "Manchester", Lat: 53.4808, Lon: -2.2426},
	{Country: "DE", Region: "Berlin", City: "Berlin", Lat: 52.5200, Lon: 13.4050},
	{Country: "DE", Region: "Bavaria", City: "Munich", Lat: 48.1351, Lon: 11.5820},
	{Country: "FR", Region: "Ile-de-France", City: "Paris", Lat: 48.8566, Lon: 2.3522},
	{Country: "NL", Region: "North Holland", City: "Amsterdam", Lat: 52.3676, Lon: 4.9041},
	{Country: "ES", Region: "Madrid", City: "Madrid", Lat: 40.4168, Lon: -3.7038},
	{Country: "IT", Region: "Lazio", City: "Rome", Lat: 41.9028, Lon: 12.4964},
	{Country: "PL", Region: "Masovia", City: "Warsaw", Lat: 52.2297, Lon: 21.0122},
	{Country: "SE", Region: "Stockholm", City: "Stockholm", Lat: 59.3293, Lon: 18.0686},
	{Country: "BR", Region: "Sao Paulo", City: "Sao Paulo", Lat: -23.5505, Lon: -46.6333},
	{Country: "MX", Region: "CDMX", City: "Mexico City", Lat: 19.4326, Lon: -99.1332},
	{Country: "CA", Region: "Ontario", City: "Toronto", Lat: 43.6532, Lon: -79.3832},
	{Country: "AU", Region: "New South Wales", City: "Sydney", Lat: -33.8688, Lon: 151.2093},
	{Country: "JP", Region: "Tokyo", City: "Tokyo", Lat: 35.6762, Lon: 139.6503},
	{Country: "IN", Region: "Maharashtra", City: "Mumbai", Lat: 19.0760, Lon: 72.8777},
	{Country: "SG", Region: "Singapore", City: "Singapore", Lat: 1.3521, Lon: 103.8198},
	{Country: "KR", Region: "Seoul", City: "Seoul", Lat: 37.5665, Lon: 126.9780},
}
