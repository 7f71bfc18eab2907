package models

// Course представляет курс каталога. Курсы создаются миграциями-сидами
// и доступны только для чтения через API.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Duration    int    `json:"duration"` // Длительность в часах
	Price       *int   `json:"price"`    // nil — бесплатный курс
}
