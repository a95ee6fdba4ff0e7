package models

import "fmt"

// Category — закрытый перечень категорий каталога.
// Неизвестные значения отклоняются на границе API.
type Category string

const (
	CategoryPerfumes    Category = "perfumes"
	CategoryShoes       Category = "shoes"
	CategoryApparel     Category = "apparel"
	CategoryElectronics Category = "electronics"
	CategoryMixed       Category = "mixed"
)

// Valid проверяет, что категория входит в перечень допустимых.
func (c Category) Valid() bool {
	switch c {
	case CategoryPerfumes, CategoryShoes, CategoryApparel, CategoryElectronics, CategoryMixed:
		return true
	}
	return false
}

// ParseCategory разбирает строку в категорию, возвращает ошибку при неизвестном значении.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}
