package style

import (
	"github.com/joshuapare/stylekit/internal/logger"
	"github.com/joshuapare/stylekit/pkg/grid"
)

// InsertRows inserts count empty rows before row position. Content pushed
// past the last row is returned as undo data.
func (s *Storage) InsertRows(position, count int) ([]Pair, error) {
	return s.shift("insert_rows", grid.InsertRows(position, count, s.lim, s.opts.InsertMode))
}

// RemoveRows removes count rows starting at position and returns their
// content as undo data.
func (s *Storage) RemoveRows(position, count int) ([]Pair, error) {
	return s.shift("remove_rows", grid.RemoveRows(position, count, s.lim))
}

// InsertColumns inserts count empty columns before column position.
func (s *Storage) InsertColumns(position, count int) ([]Pair, error) {
	return s.shift("insert_columns", grid.InsertColumns(position, count, s.lim, s.opts.InsertMode))
}

// RemoveColumns removes count columns starting at position.
func (s *Storage) RemoveColumns(position, count int) ([]Pair, error) {
	return s.shift("remove_columns", grid.RemoveColumns(position, count, s.lim))
}

// InsertShiftRight inserts the cells of rect, pushing the cells at and right
// of it within its rows to the right.
func (s *Storage) InsertShiftRight(rect grid.Rect) ([]Pair, error) {
	if err := rect.Validate(s.lim); err != nil {
		return nil, err
	}
	return s.shift("insert_shift_right", grid.InsertShiftRight(rect, s.lim, s.opts.InsertMode))
}

// InsertShiftDown inserts the cells of rect, pushing the cells at and below
// it within its columns down.
func (s *Storage) InsertShiftDown(rect grid.Rect) ([]Pair, error) {
	if err := rect.Validate(s.lim); err != nil {
		return nil, err
	}
	return s.shift("insert_shift_down", grid.InsertShiftDown(rect, s.lim, s.opts.InsertMode))
}

// RemoveShiftLeft deletes the cells of rect, pulling the cells right of it
// within its rows to the left.
func (s *Storage) RemoveShiftLeft(rect grid.Rect) ([]Pair, error) {
	if err := rect.Validate(s.lim); err != nil {
		return nil, err
	}
	return s.shift("remove_shift_left", grid.RemoveShiftLeft(rect, s.lim))
}

// RemoveShiftUp deletes the cells of rect, pulling the cells below it within
// its columns up.
func (s *Storage) RemoveShiftUp(rect grid.Rect) ([]Pair, error) {
	if err := rect.Validate(s.lim); err != nil {
		return nil, err
	}
	return s.shift("remove_shift_up", grid.RemoveShiftUp(rect, s.lim))
}

// shift runs one structural edit. The returned undo data starts with a
// reset pair over the discarded band followed by the discarded pairs in z
// order; replaying it with ApplyUndo after the inverse edit restores every
// cell.
func (s *Storage) shift(op string, sh grid.Shift) ([]Pair, error) {
	if err := sh.Validate(); err != nil {
		return nil, err
	}

	s.cache.Invalidate(sh.Affected())
	lost := s.index.Shift(sh)
	s.used.Shift(sh)

	undo := make([]Pair, 0, len(lost)+1)
	undo = append(undo, Pair{Rect: sh.Lost()})
	undo = append(undo, lost...)

	if sh.Op == grid.Insert && len(lost) > 0 {
		logger.Warn("style data truncated at grid limit",
			"op", op, "position", sh.Position, "count", sh.Count,
			"band", sh.Lost().String(), "pairs", len(lost))
	}
	s.metrics.Edit(op, len(lost))
	s.publishSize()
	return undo, nil
}
