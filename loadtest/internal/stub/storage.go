package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const bookingDateLayout = "02/01/2006"

type Bucket struct {
	StartDate time.Time
	EndDate   time.Time
	Count     int
	Nights    int
	AgentName string
}

type BookingStorage struct {
	mu       sync.RWMutex
	bookings map[string]BookingResponse // bookingID -> booking
}

func NewBookingStorage() *BookingStorage {
	return &BookingStorage{
		bookings: make(map[string]BookingResponse),
	}
}

func (s *BookingStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = make(map[string]BookingResponse)
}

func (s *BookingStorage) Put(booking BookingResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
}

func (s *BookingStorage) Get(id string) (BookingResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *BookingStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// AddBucket generates the bucket's bookings and returns their IDs in creation order.
func (s *BookingStorage) AddBucket(runID string, bucket *Bucket) []string {
	if bucket.Count <= 0 {
		return nil
	}

	days := int(bucket.EndDate.Sub(bucket.StartDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	nights := bucket.Nights
	if nights <= 0 {
		nights = 1
	}

	agent := bucket.AgentName
	if agent == "" {
		agent = "Load Test Agent"
	}

	ids := make([]string, 0, bucket.Count)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < bucket.Count; i++ {
		checkIn := bucket.StartDate.AddDate(0, 0, i*days/bucket.Count)
		id := generateBookingID(runID, bucket.StartDate, i)

		s.bookings[id] = BookingResponse{
			ID:           id,
			ClientName:   fmt.Sprintf("Guest %d", i+1),
			AgentName:    agent,
			CheckInDate:  checkIn.Format(bookingDateLayout),
			CheckOutDate: checkIn.AddDate(0, 0, nights).Format(bookingDateLayout),
		}
		ids = append(ids, id)
	}

	return ids
}

func generateBookingID(runID string, bucketStart time.Time, index int) string {
	input := fmt.Sprintf("%s-%s-%d", runID, bucketStart.Format("20060102"), index)
	hash := sha256.Sum256([]byte(input))
	hashStr := hex.EncodeToString(hash[:8])
	return fmt.Sprintf("%s-%s-%s", runID, bucketStart.Format("20060102"), hashStr)
}
