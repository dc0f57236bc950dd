package model

// StockEffect is what a transaction lifecycle event does to the ledger.
type StockEffect int

const (
	// StockEffectNone leaves stock untouched.
	StockEffectNone StockEffect = iota
	// StockEffectReserveAll decrements stock for every line item, after an
	// availability check against the current snapshot.
	StockEffectReserveAll
	// StockEffectReleaseAll increments stock for every line item,
	// unconditionally.
	StockEffectReleaseAll
)

func (e StockEffect) String() string {
	switch e {
	case StockEffectReserveAll:
		return "reserve_all"
	case StockEffectReleaseAll:
		return "release_all"
	}
	return "none"
}

type typePair struct {
	from TransactionType
	to   TransactionType
}

// transitionEffects is the full update matrix. Only crossings of the
// outbound/inbound boundary move stock; same-side updates are field-only.
//
// A transaction created directly as RETURNED is a standalone return record,
// not the reversal of a prior outbound transaction, so RETURNED -> outbound
// must reserve and outbound -> RETURNED must release, while RETURNED ->
// RETURNED stays a no-op.
var transitionEffects = map[typePair]StockEffect{
	{TxSold, TxSold}:     StockEffectNone,
	{TxSold, TxRent}:     StockEffectNone,
	{TxSold, TxReturned}: StockEffectReleaseAll,

	{TxRent, TxSold}:     StockEffectNone,
	{TxRent, TxRent}:     StockEffectNone,
	{TxRent, TxReturned}: StockEffectReleaseAll,

	{TxReturned, TxSold}:     StockEffectReserveAll,
	{TxReturned, TxRent}:     StockEffectReserveAll,
	{TxReturned, TxReturned}: StockEffectNone,
}

// TransitionEffect resolves the stock effect of re-typing a transaction
// from oldType to newType.
func TransitionEffect(oldType, newType TransactionType) StockEffect {
	return transitionEffects[typePair{oldType, newType}]
}

// CreationEffect resolves the stock effect of creating a transaction.
// Creating a RETURNED transaction deliberately has no effect: stock only
// comes back when an existing outbound transaction transitions to RETURNED.
func CreationEffect(t TransactionType) StockEffect {
	if t.IsOutbound() {
		return StockEffectReserveAll
	}
	return StockEffectNone
}

// DeletionEffect resolves the stock effect of deleting a transaction:
// outbound deletions restore the units they had taken.
func DeletionEffect(t TransactionType) StockEffect {
	if t.IsOutbound() {
		return StockEffectReleaseAll
	}
	return StockEffectNone
}
