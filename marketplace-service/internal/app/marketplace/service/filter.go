package service

import (
	"sort"
	"strconv"
	"strings"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
)

// ApplyFilter возвращает подпоследовательность объявлений, удовлетворяющих
// логическому AND всех активных предикатов, в исходном порядке
// Фильтрация идемпотентна: повторное применение того же фильтра не меняет результат
func ApplyFilter(vehicles []entity.Vehicle, f entity.ListingFilter) []entity.Vehicle {
	result := make([]entity.Vehicle, 0, len(vehicles))

	for _, v := range vehicles {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if len(f.Categories) > 0 && !matchesCategory(v, f.Categories) {
			continue
		}
		if f.Query != "" && !matchesQuery(v, f.Query) {
			continue
		}
		if f.PriceMin != nil && v.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && v.Price > *f.PriceMax {
			continue
		}
		result = append(result, v)
	}

	return result
}

func matchesCategory(v entity.Vehicle, categories []string) bool {
	for _, c := range categories {
		if strings.EqualFold(v.Category, c) {
			return true
		}
	}
	return false
}

// matchesQuery выполняет регистронезависимый подстрочный поиск по марке,
// модели, году, имени и email продавца и референсу платежа
func matchesQuery(v entity.Vehicle, query string) bool {
	q := strings.ToLower(query)

	fields := []string{
		v.Brand,
		v.Model,
		strconv.Itoa(v.Year),
		v.Seller.Name,
		v.Seller.Email,
	}
	if v.PaymentProof != nil {
		fields = append(fields, v.PaymentProof.Reference)
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// SortListings сортирует объявления по указанному ключу
// Стабильная сортировка: при равных ключах сохраняется естественный порядок
// выборки (новые первыми)
func SortListings(vehicles []entity.Vehicle, sortKey string) {
	switch sortKey {
	case "price_asc":
		sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].Price < vehicles[j].Price })
	case "price_desc":
		sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].Price > vehicles[j].Price })
	case "year_asc":
		sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].Year < vehicles[j].Year })
	case "year_desc":
		sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].Year > vehicles[j].Year })
	case "created_asc":
		sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].CreatedAt.Before(vehicles[j].CreatedAt) })
	case "created_desc":
		sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt) })
	}
}

// NormalizePageSize приводит размер страницы к одному из допустимых значений
func NormalizePageSize(size int) int {
	for _, s := range entity.PageSizes {
		if size == s {
			return size
		}
	}
	return entity.DefaultPageSize
}

// Paginate нарезает отфильтрованную последовательность на страницы
// Номер страницы ограничивается допустимым диапазоном [1, totalPages]
func Paginate(vehicles []entity.Vehicle, page, pageSize int) ([]entity.Vehicle, int, int) {
	pageSize = NormalizePageSize(pageSize)

	totalPages := (len(vehicles) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(vehicles) {
		start = len(vehicles)
	}
	if end > len(vehicles) {
		end = len(vehicles)
	}

	return vehicles[start:end], page, totalPages
}
