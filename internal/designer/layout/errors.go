package layout

import "errors"

var (
	// ErrInsufficientPoints - у многоугольника комнаты меньше трёх вершин.
	ErrInsufficientPoints = errors.New("room needs at least 3 points")

	// ErrNoOwningRoom - точка размещения не попала ни в одну комнату.
	ErrNoOwningRoom = errors.New("placement point is outside every room")

	ErrRoomNotFound = errors.New("room not found")

	ErrRoomExists = errors.New("room with this id already exists")

	ErrLayoutNotFound = errors.New("layout not found")

	// ErrDraftIncomplete - попытка завершить черновик, в котором меньше трёх точек.
	ErrDraftIncomplete = errors.New("draft needs at least 3 points to finish")
)
