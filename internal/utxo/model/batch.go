package model

import (
	"bytes"
	"sort"
)

// Batch buffers decoded outputs column by column until they are flushed as one row group.
type Batch struct {
	TxIDs     []string
	Vouts     []uint64
	Heights   []uint64
	Coinbases []bool
	Amounts   []uint64
	Scripts   [][]byte
}

// NewBatch returns a Batch with room for capacity rows.
func NewBatch(capacity int) *Batch {
	return &Batch{
		TxIDs:     make([]string, 0, capacity),
		Vouts:     make([]uint64, 0, capacity),
		Heights:   make([]uint64, 0, capacity),
		Coinbases: make([]bool, 0, capacity),
		Amounts:   make([]uint64, 0, capacity),
		Scripts:   make([][]byte, 0, capacity),
	}
}

// Append projects a decoded UTXO into the column buffers.
func (b *Batch) Append(u UTXO) {
	b.TxIDs = append(b.TxIDs, u.TxID.String())
	b.Vouts = append(b.Vouts, u.Vout)
	b.Heights = append(b.Heights, u.Coin.Height)
	b.Coinbases = append(b.Coinbases, u.Coin.Coinbase)
	b.Amounts = append(b.Amounts, u.Coin.Amount)
	b.Scripts = append(b.Scripts, u.Coin.Script)
}

// Len returns the number of buffered rows.
func (b *Batch) Len() int {
	return len(b.Scripts)
}

// Less orders rows by the byte order of their scripts.
func (b *Batch) Less(i, j int) bool {
	return bytes.Compare(b.Scripts[i], b.Scripts[j]) < 0
}

// Swap exchanges rows i and j in every column.
func (b *Batch) Swap(i, j int) {
	b.TxIDs[i], b.TxIDs[j] = b.TxIDs[j], b.TxIDs[i]
	b.Vouts[i], b.Vouts[j] = b.Vouts[j], b.Vouts[i]
	b.Heights[i], b.Heights[j] = b.Heights[j], b.Heights[i]
	b.Coinbases[i], b.Coinbases[j] = b.Coinbases[j], b.Coinbases[i]
	b.Amounts[i], b.Amounts[j] = b.Amounts[j], b.Amounts[i]
	b.Scripts[i], b.Scripts[j] = b.Scripts[j], b.Scripts[i]
}

// Sort orders the buffered rows by script. Only this batch is sorted; separate batches are independent.
func (b *Batch) Sort() {
	sort.Sort(b)
}

// Reset drops all buffered rows. String and script references are zeroed before truncating.
func (b *Batch) Reset() {
	clear(b.TxIDs)
	clear(b.Scripts)
	b.TxIDs = b.TxIDs[:0]
	b.Vouts = b.Vouts[:0]
	b.Heights = b.Heights[:0]
	b.Coinbases = b.Coinbases[:0]
	b.Amounts = b.Amounts[:0]
	b.Scripts = b.Scripts[:0]
}
