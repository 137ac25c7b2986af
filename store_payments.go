package console

const msgPaymentsFetchFailed = "Error fetching payments"

// PaymentStore backs the finance dashboard and the customer payment form.
// New payments are listed first and always start PENDING.
type PaymentStore struct {
	*Store[Payment]
}

func NewPaymentStore(opts ...StoreOption[Payment]) *PaymentStore {
	handlers := StoreHandlers[Payment]{
		GetID: func(p Payment) int64 { return p.ID },
		SetID: func(p *Payment, id int64) { p.ID = id },
		Prepare: func(p *Payment) {
			p.Status = PaymentPending
		},
	}
	opts = append([]StoreOption[Payment]{WithStorePrepend[Payment]()}, opts...)
	return &PaymentStore{Store: NewStore("payments", msgPaymentsFetchFailed, handlers, opts...)}
}

// UpdateStatus sets the status in place; unknown ids are a no-op.
func (s *PaymentStore) UpdateStatus(id int64, status PaymentStatus) bool {
	return s.Mutate(id, func(p *Payment) {
		p.Status = status
	})
}

func (s *PaymentStore) ByStatus(status PaymentStatus) []Payment {
	return s.Filter(func(p Payment) bool { return p.Status == status })
}

func (s *PaymentStore) Pending() []Payment {
	return s.ByStatus(PaymentPending)
}

func (s *PaymentStore) Processing() []Payment {
	return s.ByStatus(PaymentProcessing)
}

func (s *PaymentStore) Completed() []Payment {
	return s.ByStatus(PaymentCompleted)
}
