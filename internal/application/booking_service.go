package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/booking"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/ledger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
	redisinfra "github.com/sanosuguru/cinema-booking-ledger/internal/infrastructure/redis"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/logger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
)

// ReportCache は月間レポートのキャッシュ
type ReportCache interface {
	GetMonthlyReport(ctx context.Context, year, month int) ([]ledger.RoomStatistics, error)
	SetMonthlyReport(ctx context.Context, year, month int, report []ledger.RoomStatistics, ttl time.Duration) error
	InvalidateMonthlyReport(ctx context.Context, year, month int) error
}

// BookingService は顧客・上映の登録簿と予約台帳をまとめて扱う
// 台帳自体は排他を持たないため、すべての操作をここで直列化する
// 返すエンティティはロック中に作った複製で、呼び出し側が読んでも台帳と競合しない
type BookingService struct {
	mu         sync.RWMutex
	ledger     *ledger.Manager
	capacity   screening.CapacitySource
	customers  map[string]*customer.Customer
	screenings map[string]*screening.Screening
	// 予約の追加・取消のたびに進む。集計中に変化したらキャッシュへ保存した結果を捨てる
	reportGen atomic.Uint64

	cache    ReportCache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      ledger.Clock
}

// ServiceOption は BookingService の設定
type ServiceOption func(*BookingService)

// WithReportCache は月間レポートのキャッシュを設定する
func WithReportCache(c ReportCache, ttl time.Duration) ServiceOption {
	return func(s *BookingService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithMetrics はメトリクスの記録先を設定する
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

// WithLogger はロガーを差し替える
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *BookingService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock は集計に使う現在時刻の取得元を差し替える
func WithClock(c ledger.Clock) ServiceOption {
	return func(s *BookingService) {
		if c != nil {
			s.now = c
		}
	}
}

// NewBookingService は空の台帳を持つサービスを作成する
func NewBookingService(capacity screening.CapacitySource, opts ...ServiceOption) *BookingService {
	s := &BookingService{
		capacity:   capacity,
		customers:  make(map[string]*customer.Customer),
		screenings: make(map[string]*screening.Screening),
		log:        logger.Named("booking"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ledger = ledger.NewManager(ledger.WithClock(s.now))
	return s
}

type RegisterCustomerInput struct {
	Name           string
	Address        string
	Phone          string
	PreferredTypes []screening.Type
}

func (s *BookingService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*customer.Customer, error) {
	c, err := customer.NewCustomer(input.Name, input.Address, input.Phone, input.PreferredTypes)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomer(c) != nil {
		return nil, ErrCustomerAlreadyExists
	}
	c.ID = uuid.New().String()
	s.customers[c.ID] = c

	s.log.Info("顧客を登録しました", logger.CustomerID(c.ID), zap.String("name", c.Name()))
	return c.Clone(), nil
}

func (s *BookingService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.customerByID(id)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// UpdateCustomerPhone は顧客の電話番号を変更する
// 変更後に別の顧客と同一になる場合は ErrCustomerAlreadyExists
func (s *BookingService) UpdateCustomerPhone(ctx context.Context, id, phone string) (*customer.Customer, error) {
	if err := customer.ValidatePhone(phone); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.customerByID(id)
	if err != nil {
		return nil, err
	}
	for _, other := range s.customers {
		if other.ID != c.ID && other.Name() == c.Name() && other.Phone() == phone {
			return nil, ErrCustomerAlreadyExists
		}
	}
	if err := c.SetPhone(phone); err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

type CreateScreeningInput struct {
	Type     screening.Type
	Room     string
	StartsAt time.Time
}

// CreateScreening は上映を登録する
// 座席数の取得元は並行利用できないため、ロック中に座席数を決める
func (s *BookingService) CreateScreening(ctx context.Context, input CreateScreeningInput) (*screening.Screening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := screening.NewScreening(input.Type, input.Room, input.StartsAt, s.capacity)
	if err != nil {
		return nil, err
	}

	for _, existing := range s.screenings {
		if existing.Equal(sc) {
			return nil, ErrScreeningAlreadyExists
		}
	}
	sc.ID = uuid.New().String()
	s.screenings[sc.ID] = sc

	s.log.Info("上映を登録しました",
		logger.ScreeningID(sc.ID),
		zap.String("room", sc.Room),
		zap.Stringer("type", sc.Type),
		zap.Time("starts_at", sc.StartsAt),
		zap.Int("capacity", sc.Capacity()),
	)
	return sc.Clone(), nil
}

func (s *BookingService) GetScreening(ctx context.Context, id string) (*screening.Screening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, err := s.screeningByID(id)
	if err != nil {
		return nil, err
	}
	return sc.Clone(), nil
}

// ListScreenings は上映を開始日時順に返す
func (s *BookingService) ListScreenings(ctx context.Context) []*screening.Screening {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*screening.Screening, 0, len(s.screenings))
	for _, sc := range s.screenings {
		out = append(out, sc.Clone())
	}
	slices.SortFunc(out, func(a, b *screening.Screening) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		if a.Room != b.Room {
			if a.Room < b.Room {
				return -1
			}
			return 1
		}
		return int(a.Type) - int(b.Type)
	})
	return out
}

type CreateBookingInput struct {
	CustomerID  string
	ScreeningID string
	Seats       int
}

// CreateBooking は予約を追加し、上映月のレポートキャッシュを無効化する
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	b, err := s.createBooking(input)
	if err != nil {
		return nil, err
	}
	s.invalidateReport(ctx, b.Screening().StartsAt)
	return b, nil
}

func (s *BookingService) createBooking(input CreateBookingInput) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.addBooking(input)
	if err != nil {
		s.countBooking(bookingStatus(err))
		s.log.Warn("予約に失敗しました",
			logger.CustomerID(input.CustomerID),
			logger.ScreeningID(input.ScreeningID),
			logger.Seats(input.Seats),
			zap.Error(err),
		)
		return nil, err
	}

	sc := b.Screening()
	s.reportGen.Add(1)
	s.countBooking("success")
	if s.metrics != nil {
		s.metrics.ReservedSeats.WithLabelValues(sc.Room).Add(float64(b.Seats()))
		s.metrics.ActiveBookings.Set(float64(s.ledger.Len()))
	}

	s.log.Info("予約を追加しました",
		logger.BookingID(b.ID),
		logger.CustomerID(input.CustomerID),
		logger.ScreeningID(input.ScreeningID),
		logger.Seats(b.Seats()),
		zap.Stringer("amount", b.TotalAmount()),
		zap.Int("available", sc.Available()),
	)
	return b.Clone(), nil
}

func (s *BookingService) addBooking(input CreateBookingInput) (*booking.Booking, error) {
	c, err := s.customerByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	sc, err := s.screeningByID(input.ScreeningID)
	if err != nil {
		return nil, err
	}
	b, err := booking.NewBooking(c, sc, input.Seats)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.AddBooking(b); err != nil {
		return nil, fmt.Errorf("予約の追加に失敗: %w", err)
	}
	b.ID = uuid.New().String()
	return b, nil
}

// CancelBooking は顧客・上映に一致する予約を取り消す
func (s *BookingService) CancelBooking(ctx context.Context, customerID, screeningID string) (*booking.Booking, error) {
	b, err := s.removeBooking(customerID, screeningID)
	if err != nil {
		return nil, err
	}
	s.invalidateReport(ctx, b.Screening().StartsAt)
	return b, nil
}

func (s *BookingService) removeBooking(customerID, screeningID string) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.cancelBooking(customerID, screeningID)
	if err != nil {
		s.countCancellation(cancellationStatus(err))
		s.log.Warn("予約の取消に失敗しました",
			logger.CustomerID(customerID),
			logger.ScreeningID(screeningID),
			zap.Error(err),
		)
		return nil, err
	}

	sc := b.Screening()
	s.reportGen.Add(1)
	s.countCancellation("success")
	if s.metrics != nil {
		s.metrics.ReservedSeats.WithLabelValues(sc.Room).Sub(float64(b.Seats()))
		s.metrics.ActiveBookings.Set(float64(s.ledger.Len()))
	}

	s.log.Info("予約を取り消しました",
		logger.BookingID(b.ID),
		logger.CustomerID(customerID),
		logger.ScreeningID(screeningID),
		logger.Seats(b.Seats()),
	)
	return b.Clone(), nil
}

func (s *BookingService) cancelBooking(customerID, screeningID string) (*booking.Booking, error) {
	c, err := s.customerByID(customerID)
	if err != nil {
		return nil, err
	}
	sc, err := s.screeningByID(screeningID)
	if err != nil {
		return nil, err
	}
	b, err := s.ledger.CancelBooking(c, sc)
	if err != nil {
		return nil, fmt.Errorf("予約の取消に失敗: %w", err)
	}
	return b, nil
}

// ListBookings は登録順の予約一覧を返す
func (s *BookingService) ListBookings(ctx context.Context) []*booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := s.ledger.Bookings()
	for i, b := range bookings {
		bookings[i] = b.Clone()
	}
	return bookings
}

func (s *BookingService) HasBookingForCustomer(ctx context.Context, customerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.customerByID(customerID)
	if err != nil {
		return false, err
	}
	return s.ledger.HasBookingForCustomer(c), nil
}

func (s *BookingService) HasBookingForScreening(ctx context.Context, screeningID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, err := s.screeningByID(screeningID)
	if err != nil {
		return false, err
	}
	return s.ledger.HasBookingForScreening(sc), nil
}

// MonthlyReport は今年の指定月の上映室別売上を返す
// キャッシュがあればそれを使い、なければ集計してキャッシュする
// キャッシュへのアクセス中はロックを持たない
func (s *BookingService) MonthlyReport(ctx context.Context, month int) ([]ledger.RoomStatistics, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ledger.ErrMonthOutOfRange, month)
	}

	year := s.now().Year()
	if s.cache != nil {
		report, err := s.cache.GetMonthlyReport(ctx, year, month)
		if err == nil {
			return report, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			s.log.Warn("レポートキャッシュの取得に失敗しました", logger.Month(month), zap.Error(err))
		}
	}

	start := time.Now()
	s.mu.RLock()
	gen := s.reportGen.Load()
	report, err := s.ledger.MonthlyReport(month)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.observeReport("monthly", start)

	if s.cache != nil {
		s.storeReport(ctx, year, month, report, gen)
	}
	return report, nil
}

// storeReport は gen 時点の集計結果をキャッシュする
// 保存までの間に予約が変わっていれば、無効化と入れ違いになった可能性があるため削除する
func (s *BookingService) storeReport(ctx context.Context, year, month int, report []ledger.RoomStatistics, gen uint64) {
	if err := s.cache.SetMonthlyReport(ctx, year, month, report, s.cacheTTL); err != nil {
		s.log.Warn("レポートキャッシュの保存に失敗しました", logger.Month(month), zap.Error(err))
		return
	}
	if s.reportGen.Load() == gen {
		return
	}
	if err := s.cache.InvalidateMonthlyReport(ctx, year, month); err != nil {
		s.log.Warn("レポートキャッシュの無効化に失敗しました", logger.Month(month), zap.Error(err))
	}
}

// TopCustomer は今年の最優秀顧客と累計金額を返す
func (s *BookingService) TopCustomer(ctx context.Context) (ledger.CustomerTotal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	defer s.observeReport("top_customer", start)
	top, ok := s.ledger.TopCustomer()
	if ok {
		top.Customer = top.Customer.Clone()
	}
	return top, ok
}

// TopCustomerOfYear は今年の最優秀顧客を「顧客 : 金額」の形式で返す
func (s *BookingService) TopCustomerOfYear(ctx context.Context) string {
	top, ok := s.TopCustomer(ctx)
	if !ok {
		return ledger.NoCustomerThisYear
	}
	return top.String()
}

func (s *BookingService) customerByID(id string) (*customer.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return c, nil
}

func (s *BookingService) screeningByID(id string) (*screening.Screening, error) {
	sc, ok := s.screenings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScreeningNotFound, id)
	}
	return sc, nil
}

func (s *BookingService) findCustomer(c *customer.Customer) *customer.Customer {
	for _, existing := range s.customers {
		if existing.Equal(c) {
			return existing
		}
	}
	return nil
}

// invalidateReport は上映日時が属する月のキャッシュを消す
// 年月は集計と同じく Clock のタイムゾーンで決める
func (s *BookingService) invalidateReport(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	year, month := ledger.PeriodOf(date, s.now().Location())
	if err := s.cache.InvalidateMonthlyReport(ctx, year, int(month)); err != nil {
		s.log.Warn("レポートキャッシュの無効化に失敗しました", zap.Time("date", date), zap.Error(err))
	}
}

func (s *BookingService) countBooking(status string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) countCancellation(status string) {
	if s.metrics != nil {
		s.metrics.CancellationsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) observeReport(report string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}

func bookingStatus(err error) string {
	switch {
	case errors.Is(err, ledger.ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, screening.ErrInsufficientSeats):
		return "insufficient_seats"
	case errors.Is(err, ErrCustomerNotFound), errors.Is(err, ErrScreeningNotFound):
		return "not_found"
	case errors.Is(err, booking.ErrInvalidSeatCount), errors.Is(err, screening.ErrInvalidSeatCount):
		return "invalid"
	default:
		return "error"
	}
}

func cancellationStatus(err error) string {
	switch {
	case errors.Is(err, ledger.ErrBookingNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrScreeningNotFound):
		return "not_found"
	default:
		return "error"
	}
}
