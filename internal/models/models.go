package models

// All lists every table owned by the application, in migration order.
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&Category{},
		&Author{},
		&Blog{},
		&Iklan{},
		&Visitor{},
	}
}
