package cache

import (
	"fmt"
	"time"
)

// keyNamespace префикс всех ключей сервиса в redis
const keyNamespace = "quickcourt:v1"

// keyCourtDaySlots ключ кэша слотов корта на дату
func keyCourtDaySlots(courtID int64, date time.Time) string {
	return fmt.Sprintf("%s:court:%d:slots:%s", keyNamespace, courtID, date.Format("2006-01-02"))
}
