// Package refdata holds the default lookup tables: the ticker universe,
// the bank nickname list, and the opinion keyword sets. Everything here is
// a fallback; config can replace any table, and the matching code only
// ever receives these as parameters.
package refdata

import "saveticker-sync/internal/types"

// Tickers returns the default ticker universe, top NASDAQ symbols by
// market cap. Order matters: the linker attributes a headline to the
// first symbol in this list that appears in it.
func Tickers() []string {
	return []string{
		"AAPL", "MSFT", "GOOG", "GOOGL", "NVDA", "META", "AVGO", "TSLA",
		"COST", "PEP", "ADBE", "CSCO", "AMD", "TMUS", "AMZN", "NFLX",
		"INTC", "TXN", "QCOM", "AMGN", "HON", "BKNG", "AMAT", "INTU",
		"SBUX", "ISRG", "REGN", "ADI", "MU", "MDLZ", "GILD", "FISV",
		"VRTX", "SNPS", "LRCX", "MAR", "ADP", "PDD", "PANW", "MRNA",
		"KDP", "AEP", "ORLY", "CTAS", "MNST", "IDXX", "KHC", "EXC",
		"CSX", "MCHP", "SIRI", "PAYX", "KLAC", "CDNS", "CHTR", "DXCM",
		"ODFL", "FAST", "EA", "PCAR", "CEG", "WBD", "FTNT", "ON",
		"BKR", "CDW", "ROST", "DDOG", "XEL", "DLTR", "ANSS", "VRSK",
		"CPRT", "TTD", "WBA", "GFS", "ALGN", "CTSH", "ZS", "CBOE",
		"INCY", "MTCH", "TEAM", "GEN", "SPLK", "TCOM", "LULU", "MDB",
		"ALNY", "QRVO", "BIIB", "WDAY", "OKTA", "ROKU", "CRWD", "NTES",
		"ZM", "DOCU", "JD", "SGEN",
	}
}

// OpinionKeywords is the pre-filter: a headline must contain one of these
// to be considered opinion-bearing at all.
func OpinionKeywords() []string {
	return []string{"목표가 상향", "목표가 하향", "투자 의견", "투자의견", "목표가"}
}

// UpgradeKeywords mark a positive analyst action. Checked before the
// downgrade set, so a headline matching both classifies as an upgrade.
func UpgradeKeywords() []string {
	return []string{"목표가 상향", "상향", "매수", "비중확대", "Buy", "Overweight"}
}

// DowngradeKeywords mark a negative analyst action.
func DowngradeKeywords() []string {
	return []string{"목표가 하향", "하향", "매도", "비중축소", "Sell", "Underweight"}
}

// Banks returns the brokerage list with Korean and English surface forms.
// Scan order is significant and deliberately preserved: short nicknames
// like "TD" can collide with unrelated substrings, and the first match in
// list order wins.
func Banks() []types.Bank {
	return []types.Bank{
		{Name: "테러다인", NickNames: []string{"테러다인"}},
		{Name: "셀레스티카", NickNames: []string{"셀레스티카", "세레스티카"}},
		{Name: "미즈호", NickNames: []string{"미즈호"}},
		{Name: "Melius", NickNames: []string{"Melius", "멜리어스"}},
		{Name: "Susquehanna", NickNames: []string{"Susquehanna", "스쿼시하난"}},
		{Name: "Stephens", NickNames: []string{"Stephens", "스테펜스"}},
		{Name: "오펜하이머", NickNames: []string{"오펜하이머"}},
		{Name: "뱅크오브아메리카", NickNames: []string{"뱅크오브아메리카"}},
		{Name: "BITG", NickNames: []string{"BITG"}},
		{Name: "KGI", NickNames: []string{"KGI"}},
		{Name: "골드만삭스", NickNames: []string{"골드만삭스"}},
		{Name: "JP모건", NickNames: []string{"JP모건"}},
		{Name: "모건스탠리", NickNames: []string{"모건스탠리"}},
		{Name: "RBC", NickNames: []string{"RBC"}},
		{Name: "키방크", NickNames: []string{"키방크", "KeyBanc", "KeyBnac"}},
		{Name: "바클레이스", NickNames: []string{"바클레이스", "바클레이즈즈"}},
		{Name: "에버코어", NickNames: []string{"에버코어"}},
		{Name: "CIBC", NickNames: []string{"CIBC"}},
		{Name: "제프리스", NickNames: []string{"제프리스", "제피리스", "Jefferies"}},
		{Name: "William", NickNames: []string{"William"}},
		{Name: "Neil", NickNames: []string{"Neil"}},
		{Name: "씨티", NickNames: []string{"씨티", "Citi"}},
		{Name: "씨트론", NickNames: []string{"씨트론"}},
		{Name: "Cantor", NickNames: []string{"Cantor"}},
		{Name: "MoffettNathanson", NickNames: []string{"MoffettNathanson"}},
		{Name: "TD", NickNames: []string{"TD"}},
		{Name: "Cowen", NickNames: []string{"Cowen"}},
		{Name: "Canaccord", NickNames: []string{"Canaccord"}},
		{Name: "HSBC", NickNames: []string{"HSBC"}},
		{Name: "BMO", NickNames: []string{"BMO"}},
		{Name: "Berenberg", NickNames: []string{"Berenberg"}},
		{Name: "Baird", NickNames: []string{"Baird"}},
		{Name: "Stifel", NickNames: []string{"Stifel"}},
		{Name: "구겐하임", NickNames: []string{"구겐하임"}},
		{Name: "DZ", NickNames: []string{"DZ"}},
		{Name: "Rothchild&Co", NickNames: []string{"Rothchild&Co"}},
		{Name: "UBS", NickNames: []string{"UBS"}},
		{Name: "도이치방크", NickNames: []string{"도이치방크", "도이체방크"}},
		{Name: "HC", NickNames: []string{"HC"}},
		{Name: "Wainwright", NickNames: []string{"Wainwright"}},
		{Name: "스코샤방크", NickNames: []string{"스코샤방크"}},
		{Name: "KBW", NickNames: []string{"KBW"}},
		{Name: "Loop", NickNames: []string{"Loop"}},
		{Name: "Capital", NickNames: []string{"Capital"}},
		{Name: "Arete", NickNames: []string{"Arete"}},
		{Name: "Ascendiant", NickNames: []string{"Ascendiant"}},
		{Name: "Wolfe", NickNames: []string{"Wolfe"}},
		{Name: "BTIG", NickNames: []string{"BTIG"}},
		{Name: "웰스파고", NickNames: []string{"웰스파고"}},
		{Name: "벤치마크", NickNames: []string{"벤치마크", "Benchmark"}},
		{Name: "Needhma", NickNames: []string{"Needhma"}},
		{Name: "Seaport Global", NickNames: []string{"Seaport Global"}},
		{Name: "Needham", NickNames: []string{"Needham"}},
		{Name: "Wedbush", NickNames: []string{"Wedbush", "웨드부쉬"}},
		{Name: "BNP파리바스", NickNames: []string{"BNP파리바스"}},
		{Name: "Truist", NickNames: []string{"Truist"}},
		{Name: "Cannacord", NickNames: []string{"Cannacord"}},
		{Name: "Citizens", NickNames: []string{"Citizens"}},
		{Name: "Argus", NickNames: []string{"Argus"}},
		{Name: "파이퍼샌들러", NickNames: []string{"파이퍼샌들러", "Piper Sandler"}},
		{Name: "Rosenblatt", NickNames: []string{"Rosenblatt"}},
		{Name: "번스타인", NickNames: []string{"번스타인"}},
		{Name: "Leerink", NickNames: []string{"Leerink"}},
		{Name: "Craig - Hallum", NickNames: []string{"Craig - Hallum"}},
		{Name: "B.Riley", NickNames: []string{"B.Riley", "B Riley"}},
		{Name: "DA Davidson", NickNames: []string{"DA Davidson"}},
		{Name: "레드번", NickNames: []string{"RedBurn", "레드번"}},
	}
}
