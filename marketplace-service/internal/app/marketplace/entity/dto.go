package entity

// CreateVehicleRequest - запрос на создание объявления
type CreateVehicleRequest struct {
	Category     string        `json:"category" validate:"required"`
	Subcategory  string        `json:"subcategory"`
	Brand        string        `json:"brand" validate:"required"`
	Model        string        `json:"model" validate:"required"`
	Year         int           `json:"year" validate:"required,min=1900,max=2100"`
	Price        float64       `json:"price" validate:"required,gt=0"`
	Currency     string        `json:"currency" validate:"required,len=3"`
	Condition    string        `json:"condition" validate:"required,oneof=new used salvage"`
	Mileage      int           `json:"mileage" validate:"min=0"`
	Transmission string        `json:"transmission" validate:"required,oneof=manual automatic"`
	Fuel         string        `json:"fuel" validate:"required,oneof=gasoline diesel hybrid electric"`
	Description  string        `json:"description" validate:"required,min=10,max=4000"`
	Images       []string      `json:"images" validate:"omitempty,dive,url"`
	SellerPhone  string        `json:"seller_phone" validate:"required"`
	PaymentProof *PaymentProof `json:"payment_proof,omitempty"`
}

// UpdateVehicleRequest - запрос на обновление объявления
// Редактирование отклонённого объявления возвращает его на модерацию
type UpdateVehicleRequest struct {
	Category     string        `json:"category,omitempty"`
	Subcategory  string        `json:"subcategory,omitempty"`
	Brand        string        `json:"brand,omitempty"`
	Model        string        `json:"model,omitempty"`
	Year         int           `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Price        float64       `json:"price,omitempty" validate:"omitempty,gt=0"`
	Currency     string        `json:"currency,omitempty" validate:"omitempty,len=3"`
	Condition    string        `json:"condition,omitempty" validate:"omitempty,oneof=new used salvage"`
	Mileage      int           `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Transmission string        `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic"`
	Fuel         string        `json:"fuel,omitempty" validate:"omitempty,oneof=gasoline diesel hybrid electric"`
	Description  string        `json:"description,omitempty" validate:"omitempty,min=10,max=4000"`
	Images       []string      `json:"images,omitempty" validate:"omitempty,dive,url"`
	SellerPhone  string        `json:"seller_phone,omitempty"`
	PaymentProof *PaymentProof `json:"payment_proof,omitempty"`
}

// PageSizes - допустимые размеры страницы списка объявлений
var PageSizes = []int{10, 20, 50}

const DefaultPageSize = 20

// ListingFilter - конфигурация фильтрации/сортировки/пагинации списка
// Активные предикаты объединяются логическим AND
type ListingFilter struct {
	Status     VehicleStatus
	Categories []string
	Query      string   // регистронезависимый подстрочный поиск
	PriceMin   *float64 // включительно
	PriceMax   *float64 // включительно
	Sort       string   // price_asc, price_desc, year_asc, year_desc, created_asc, created_desc
	Page       int
	PageSize   int
}

// RejectRequest - запрос на отклонение объявления, причина обязательна
type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// CommentRequest - комментарий администратора к объявлению
type CommentRequest struct {
	Note string `json:"note" validate:"required,min=1,max=1000"`
}

// FeaturedRequest - установка флага featured
type FeaturedRequest struct {
	Featured bool `json:"featured"`
}

// RateRequest - запрос на оценку объявления
type RateRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// UploadSignatureRequest - запрос подписи для загрузки изображения
type UploadSignatureRequest struct {
	Folder string `json:"folder" validate:"omitempty,max=100"`
}

// UploadSignatureResponse - подписанные параметры загрузки для файлового хостинга
type UploadSignatureResponse struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder,omitempty"`
	APIKey    string `json:"api_key"`
}

// AnalyticsEventRequest - входящее событие аналитики
type AnalyticsEventRequest struct {
	EventType string            `json:"event_type" validate:"required,min=2,max=100"`
	VehicleID string            `json:"vehicle_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" validate:"omitempty,max=20"`
}

// RatingSummary - агрегат оценок объявления после upsert'а
type RatingSummary struct {
	VehicleID string  `json:"vehicle_id"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
	UserScore int     `json:"user_score,omitempty"`
}

// VehicleResponse - объявление с опциональной ценой в запрошенной валюте
type VehicleResponse struct {
	Vehicle
	DisplayPrice    float64 `json:"display_price,omitempty"`
	DisplayCurrency string  `json:"display_currency,omitempty"`
}

// VehicleListResponse - страница списка объявлений
type VehicleListResponse struct {
	Vehicles   []Vehicle `json:"vehicles"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// ModerationStats - статистика для админ-панели
type ModerationStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// APIResponse - единый конверт всех ответов API
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}
