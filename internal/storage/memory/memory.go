package memory

// MemoryStorage — in-memory реализация DayStorage и ReportsStorage.
// Используется когда DATABASE_URL не задан, и в тестах.
type MemoryStorage struct {
	days    *DaysMemoryStorage
	reports *ReportsMemoryStorage
}

// New создаёт новый MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		days:    NewDaysMemoryStorage(),
		reports: NewReportsMemoryStorage(),
	}
}

// GetDayStorage returns the day records storage
func (m *MemoryStorage) GetDayStorage() *DaysMemoryStorage {
	return m.days
}

// GetReportsStorage returns the reports storage
func (m *MemoryStorage) GetReportsStorage() *ReportsMemoryStorage {
	return m.reports
}

func (m *MemoryStorage) Close() error {
	// no-op для memory
	return nil
}
