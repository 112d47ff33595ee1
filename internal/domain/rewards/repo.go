package rewards

import "context"

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	Total(ctx context.Context, patientID int) (int, error)
	History(ctx context.Context, patientID, limit int) ([]*Entry, error)
}
