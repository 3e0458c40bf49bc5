package repository

// Repositories agrupa los puertos que una transición usa dentro de una misma transacción.
// Los adaptadores (postgres, memory) lo construyen atado a la tx o al pool.
type Repositories struct {
	Customers   CustomerRepository
	Materials   MaterialRepository
	Products    ProductRepository
	Stock       StockRepository
	Movements   StockMovementRepository
	Incomings   IncomingRepository
	Productions ProductionRepository
	Invoices    InvoiceRepository
	Sequences   SequenceRepository
}
