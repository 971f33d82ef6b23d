package bitcoin

// DecompressAmount reverses CompressAmount.
//
// Compressed values are 0, 1+10*(9*n+d-1)+e for e < 9, or 1+10*(n-1)+9,
// where the amount is (10*n+d)*10^e or n*10^9 respectively.
func DecompressAmount(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	x--
	e := x % 10
	x /= 10
	var n uint64
	if e < 9 {
		d := x%9 + 1
		x /= 9
		n = x*10 + d
	} else {
		n = x + 1
	}
	for ; e > 0; e-- {
		n *= 10
	}
	return n
}

// CompressAmount packs a satoshi value by moving up to nine trailing decimal zeros into the low digit.
func CompressAmount(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	var e uint64
	for n%10 == 0 && e < 9 {
		n /= 10
		e++
	}
	if e < 9 {
		d := n % 10
		n /= 10
		return 1 + (n*9+d-1)*10 + e
	}
	return 1 + (n-1)*10 + 9
}
