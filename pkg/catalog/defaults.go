package catalog

import "github.com/korjavin/maaqo/pkg/models"

// DefaultRecipes is the catalog written on first run
var DefaultRecipes = []models.Recipe{
	{
		ID:          "arroz-con-pollo",
		Name:        "Arroz con Pollo",
		Ingredients: []string{"arroz", "pollo", "culantro", "arvejas", "zanahoria", "cebolla", "ajo"},
		Time:        60,
		Healthy:     true,
		Economical:  true,
		Servings:    4,
	},
	{
		ID:          "ceviche",
		Name:        "Ceviche de Pescado",
		Ingredients: []string{"pescado", "limón", "cebolla", "ají limo", "culantro", "sal"},
		Time:        25,
		Healthy:     true,
		Economical:  false,
		Servings:    4,
	},
	{
		ID:          "tortilla-de-papa",
		Name:        "Tortilla de Papa",
		Ingredients: []string{"huevo", "papa", "cebolla", "aceite", "sal"},
		Time:        30,
		Healthy:     false,
		Economical:  true,
		Servings:    3,
	},
	{
		ID:          "lomo-saltado",
		Name:        "Lomo Saltado",
		Ingredients: []string{"carne de res", "cebolla", "tomate", "papa", "sillao", "vinagre", "arroz"},
		Time:        40,
		Healthy:     false,
		Economical:  false,
		Servings:    4,
	},
	{
		ID:          "causa-limena",
		Name:        "Causa Limeña",
		Ingredients: []string{"papa amarilla", "ají amarillo", "limón", "atún", "mayonesa", "palta"},
		Time:        45,
		Healthy:     true,
		Economical:  true,
		Servings:    6,
	},
	{
		ID:          "tallarines-verdes",
		Name:        "Tallarines Verdes",
		Ingredients: []string{"fideos", "albahaca", "espinaca", "queso fresco", "leche", "ajo"},
		Time:        35,
		Healthy:     false,
		Economical:  true,
		Servings:    4,
	},
	{
		ID:          "ensalada-de-quinua",
		Name:        "Ensalada de Quinua",
		Ingredients: []string{"quinua", "tomate", "pepino", "limón", "cebolla", "sal"},
		Time:        20,
		Healthy:     true,
		Economical:  true,
		Servings:    2,
	},
	{
		ID:          "huevos-revueltos",
		Name:        "Huevos Revueltos",
		Ingredients: []string{"huevo", "sal", "mantequilla"},
		Time:        10,
		Healthy:     false,
		Economical:  true,
		Servings:    1,
	},
	{
		ID:          "sopa-de-verduras",
		Name:        "Sopa de Verduras",
		Ingredients: []string{"zanahoria", "papa", "zapallo", "apio", "cebolla", "sal"},
		Time:        40,
		Healthy:     true,
		Economical:  true,
		Servings:    4,
	},
	{
		ID:          "aji-de-gallina",
		Name:        "Ají de Gallina",
		Ingredients: []string{"pollo", "ají amarillo", "pan", "leche", "cebolla", "ajo", "queso parmesano", "arroz"},
		Time:        70,
		Healthy:     false,
		Economical:  false,
		Servings:    6,
	},
}
