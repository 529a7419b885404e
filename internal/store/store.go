package store

import "context"

// Имена бакетов, по одному на коллекцию/синглтон
const (
	BucketTeachers     = "dream_teachers"
	BucketBookings     = "dream_bookings"
	BucketPackages     = "dream_packages"
	BucketTransactions = "dream_transactions"
	BucketCMS          = "dream_cms"
	BucketTheme        = "dream_theme"
	BucketSession      = "dream_session"
)

// SnapshotStore хранилище снимков: каждый бакет целиком перезаписывается при мутации.
// Load никогда не возвращает ошибку чтения наружу: отсутствующие или повреждённые
// данные деградируют к значению в dest, при этом defaulted=true позволяет вызывающему
// отличить чистую установку от повреждения.
type SnapshotStore interface {
	Load(ctx context.Context, bucket string, dest any) (defaulted bool)
	Save(ctx context.Context, bucket string, value any) error
	Delete(ctx context.Context, bucket string) error
}
