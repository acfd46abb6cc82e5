package invoicecalc

import "strings"

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells a whole rupee amount on the Indian scale
// (Thousand, Lakh, Crore), e.g. 123456 is
// "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees Only".
func NumberToWords(n int64) string {
	switch {
	case n == 0:
		return "Zero Rupees Only"
	case n < 0:
		// -(n+1)+1 avoids overflow at math.MinInt64.
		return "Minus " + spell(uint64(-(n+1))+1) + " Rupees Only"
	default:
		return spell(uint64(n)) + " Rupees Only"
	}
}

func spell(n uint64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	case n < 1000:
		return group(ones[n/100]+" Hundred", n%100)
	case n < 100000:
		return group(spell(n/1000)+" Thousand", n%1000)
	case n < 10000000:
		return group(spell(n/100000)+" Lakh", n%100000)
	default:
		return group(spell(n/10000000)+" Crore", n%10000000)
	}
}

func group(head string, rest uint64) string {
	if rest == 0 {
		return head
	}
	return head + " " + spell(rest)
}
