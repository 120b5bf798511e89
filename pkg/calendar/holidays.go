package calendar

import "cloud.google.com/go/civil"

// Public holidays observed by the examination office in 2024. Several
// festivals can share a date; lookups resolve to the first entry.
var holidays2024 = []Holiday{
	{Date: civil.Date{Year: 2024, Month: 1, Day: 14}, Name: "Makara Sankranti"},
	{Date: civil.Date{Year: 2024, Month: 1, Day: 26}, Name: "Republic Day"},
	{Date: civil.Date{Year: 2024, Month: 2, Day: 26}, Name: "Maha Shivaratri"},
	{Date: civil.Date{Year: 2024, Month: 3, Day: 30}, Name: "Ugadi"},
	{Date: civil.Date{Year: 2024, Month: 3, Day: 31}, Name: "Idul Fitr"},
	{Date: civil.Date{Year: 2024, Month: 4, Day: 10}, Name: "Mahavir Jayanti"},
	{Date: civil.Date{Year: 2024, Month: 4, Day: 14}, Name: "Dr Ambedkar Jayanti"},
	{Date: civil.Date{Year: 2024, Month: 4, Day: 18}, Name: "Good Friday"},
	{Date: civil.Date{Year: 2024, Month: 4, Day: 30}, Name: "Basava Jayanti"},
	{Date: civil.Date{Year: 2024, Month: 5, Day: 1}, Name: "May Day"},
	{Date: civil.Date{Year: 2024, Month: 6, Day: 7}, Name: "Bakrid / Eid al Adha"},
	{Date: civil.Date{Year: 2024, Month: 7, Day: 6}, Name: "Muharram"},
	{Date: civil.Date{Year: 2024, Month: 8, Day: 15}, Name: "Independence Day"},
	{Date: civil.Date{Year: 2024, Month: 8, Day: 27}, Name: "Ganesh Chaturthi"},
	{Date: civil.Date{Year: 2024, Month: 9, Day: 5}, Name: "Eid e Milad"},
	{Date: civil.Date{Year: 2024, Month: 9, Day: 21}, Name: "Mahalaya Amavasye"},
	{Date: civil.Date{Year: 2024, Month: 10, Day: 1}, Name: "Maha Navami"},
	{Date: civil.Date{Year: 2024, Month: 10, Day: 2}, Name: "Vijaya Dashami"},
	{Date: civil.Date{Year: 2024, Month: 10, Day: 2}, Name: "Gandhi Jayanti"},
	{Date: civil.Date{Year: 2024, Month: 10, Day: 7}, Name: "Maharishi Valmiki Jayanti"},
	{Date: civil.Date{Year: 2024, Month: 10, Day: 20}, Name: "Diwali"},
	{Date: civil.Date{Year: 2024, Month: 10, Day: 21}, Name: "Deepavali Holiday"},
	{Date: civil.Date{Year: 2024, Month: 11, Day: 1}, Name: "Kannada Rajyothsava"},
	{Date: civil.Date{Year: 2024, Month: 11, Day: 8}, Name: "Kanakadasa Jayanti"},
	{Date: civil.Date{Year: 2024, Month: 12, Day: 25}, Name: "Christmas Day"},
}

// BuiltinHolidays returns a copy of the built-in holiday table
func BuiltinHolidays() []Holiday {
	table := make([]Holiday, len(holidays2024))
	copy(table, holidays2024)
	return table
}
