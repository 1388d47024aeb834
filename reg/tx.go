package reg

// Tx stages field edits across a group of Cells that sit behind a lock
// register.
//
// Every Cell has a shadow value and a dirty flag. Commit writes the unlock key
// to the lock Cell, then writes each dirty Cell once, in slot order. Cells
// never staged are not touched.
type Tx[T Word] struct {
	lock      Cell[T]
	key       T
	cells     []Cell[T]
	shadow    []T
	dirty     []bool
	committed bool
}

// Begin starts a transaction over cells. With update set, every shadow is
// read from hardware now and unstaged bits keep their current values;
// otherwise every shadow starts at zero.
func Begin[T Word](lock Cell[T], key T, update bool, cells ...Cell[T]) (tx *Tx[T]) {
	tx = &Tx[T]{
		lock:   lock,
		key:    key,
		cells:  cells,
		shadow: make([]T, len(cells)),
		dirty:  make([]bool, len(cells)),
	}

	if update {
		for n, cell := range cells {
			tx.shadow[n] = cell.Read()
		}
	}

	return
}

// Stage replaces field f of the shadow of slot and marks it dirty. Staging
// after Commit has no effect. slot must be within the cells given to Begin.
func (tx *Tx[T]) Stage(slot int, f Field[T], value T) {
	if tx.committed {
		return
	}
	tx.shadow[slot] = f.Insert(tx.shadow[slot], value)
	tx.dirty[slot] = true
}

// Shadow returns the staged value of slot.
func (tx *Tx[T]) Shadow(slot int) T {
	return tx.shadow[slot]
}

// Dirty reports whether slot has been staged.
func (tx *Tx[T]) Dirty(slot int) bool {
	return tx.dirty[slot]
}

// Committed reports whether Commit has run.
func (tx *Tx[T]) Committed() bool {
	return tx.committed
}

// Commit writes the key, then every dirty shadow. Later calls do nothing.
func (tx *Tx[T]) Commit() {
	if tx.committed {
		return
	}
	tx.committed = true

	tx.lock.Write(tx.key)
	for n, cell := range tx.cells {
		if tx.dirty[n] {
			cell.Write(tx.shadow[n])
		}
	}
}

// Apply runs fn on tx and commits tx when fn returns or panics.
func Apply[T Word](tx *Tx[T], fn func(tx *Tx[T])) {
	defer tx.Commit()
	fn(tx)
}
