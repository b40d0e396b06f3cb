package check_availability

import "time"

// Request модель запроса на проверку доступности слотов
type Request struct {
	ClinicID int64     // ID клиники
	Date     time.Time // Дата, на которую проверяется доступность
}

// Response модель ответа с остатком слотов
type Response struct {
	ClinicID  int64     // ID клиники
	Date      time.Time // Дата
	Capacity  int       // Эффективная дневная capacity (с учетом дефолта)
	Booked    int       // Число активных записей на дату
	Remaining int       // Остаток слотов, не бывает отрицательным
}
