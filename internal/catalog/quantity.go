package catalog

// Quantity est le sélecteur de quantité de la fiche produit, jamais sous 1
type Quantity struct {
	n int
}

func NewQuantity(n int) *Quantity {
	if n < 1 {
		n = 1
	}
	return &Quantity{n: n}
}

func (q *Quantity) Value() int {
	if q.n < 1 {
		return 1
	}
	return q.n
}

func (q *Quantity) Increment() int {
	q.n = q.Value() + 1
	return q.n
}

func (q *Quantity) Decrement() int {
	if q.Value() > 1 {
		q.n = q.Value() - 1
	}
	return q.Value()
}
