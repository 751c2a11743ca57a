package domain

type Country struct {
	ID   int64
	Name string `validate:"required,max=60"`
}

// City names are not unique; two countries may both have a "Tripoli".
type City struct {
	ID        int64
	Name      string `validate:"required,max=50"`
	CountryID int64  `validate:"required"`
}
