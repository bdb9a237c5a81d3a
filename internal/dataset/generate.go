package dataset

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	DefaultRows = 20
	DefaultSeed = 42
)

var (
	sampleNames = []string{"Aarav", "Riya", "Karan", "Sneha", "Rahul"}
	sampleAges  = []int{25, 34, 45, 29, 55}
	sampleEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Generate builds n synthetic order rows from a seeded faker. The same seed
// always yields the same rows. Anomalies sit at fixed order ids: 5 and 12
// carry digit-only names ("123456", "007") and 7 carries age 151.
func Generate(n int, seed uint64) Dataset {
	if n < 0 {
		n = 0
	}
	f := gofakeit.New(seed)
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		name := f.RandomString(sampleNames)
		switch i {
		case 5:
			name = "123456"
		case 12:
			name = "007"
		}
		age := 151
		if i != 7 {
			age = f.RandomInt(sampleAges)
		}
		amount := math.Round(f.Float64Range(100, 5000)*100) / 100
		orderDate := sampleEpoch.AddDate(0, 0, f.Number(0, 30))
		rows = append(rows, Row{
			"order_id":   i,
			"name":       name,
			"age":        age,
			"amount":     amount,
			"order_date": orderDate.Format(time.DateOnly),
		})
	}
	return Dataset{
		Columns: []string{"order_id", "name", "age", "amount", "order_date"},
		Rows:    rows,
	}
}
