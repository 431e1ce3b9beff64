package product

// SampleCatalog returns the seed catalog used for local development, the CLI
// and an empty database.
func SampleCatalog() []Product {
	return []Product{
		{ID: "1", Name: "Terracotta Water Pot", Price: 1200, Artisan: "Ramesh Kumhar", Category: "pottery", AIHint: "terracotta pot traditional kitchen", Description: "Hand-thrown clay pot that keeps water cool"},
		{ID: "2", Name: "Blue Pottery Vase", Price: 2500, Artisan: "Leela Devi", Category: "pottery", AIHint: "blue pottery vase home decor", Description: "Jaipur blue pottery vase with floral motifs"},
		{ID: "3", Name: "Banarasi Silk Saree", Price: 8500, Artisan: "Abdul Rahim", Category: "textiles", AIHint: "silk saree wedding traditional", Description: "Handwoven silk saree with gold zari border"},
		{ID: "4", Name: "Pashmina Shawl", Price: 4200, Artisan: "Farida Begum", Category: "textiles", AIHint: "pashmina shawl elegant women", Description: "Soft hand-spun pashmina shawl from Kashmir"},
		{ID: "5", Name: "Kundan Necklace Set", Price: 2800, Artisan: "Meena Soni", Category: "jewelry", AIHint: "kundan necklace bridal women", Description: "Kundan necklace with matching earrings"},
		{ID: "6", Name: "Silver Oxidised Jhumka", Price: 950, Artisan: "Kavita Sharma", Category: "jewelry", AIHint: "jhumka earrings ethnic women", Description: "Oxidised silver jhumka earrings"},
		{ID: "7", Name: "Carved Sheesham Jewellery Box", Price: 1800, Artisan: "Mohan Lal", Category: "woodwork", AIHint: "wooden box carved gift", Description: "Hand-carved sheesham wood box"},
		{ID: "8", Name: "Channapatna Toy Set", Price: 650, Artisan: "Suresh Gowda", Category: "woodwork", AIHint: "wooden toys children colorful", Description: "Lacquered wooden toys from Channapatna"},
		{ID: "9", Name: "Dhokra Brass Figurine", Price: 3200, Artisan: "Bimal Dhokra", Category: "metalwork", AIHint: "dhokra brass tribal decor", Description: "Lost-wax cast brass figurine"},
		{ID: "10", Name: "Copper Tea Kettle", Price: 2100, Artisan: "Harish Tamrakar", Category: "metalwork", AIHint: "copper kettle tea kitchen", Description: "Hammered copper kettle for tea"},
		{ID: "11", Name: "Madhubani Peacock Painting", Price: 3500, Artisan: "Sita Jha", Category: "painting", AIHint: "madhubani painting wall art traditional", Description: "Hand-painted Madhubani peacock on handmade paper"},
		{ID: "12", Name: "Warli Village Canvas", Price: 1600, Artisan: "Jivya Mashe", Category: "painting", AIHint: "warli canvas wall decor", Description: "Warli tribal painting on canvas"},
	}
}
