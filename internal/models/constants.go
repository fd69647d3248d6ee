package models

// Account types
const (
	AccountTypeRRSP          = "RRSP"
	AccountTypeTFSA          = "TFSA"
	AccountTypeLIRA          = "LIRA"
	AccountTypeRESP          = "RESP"
	AccountTypeNonRegistered = "Non-Registered"
	AccountTypeGroupPlan     = "Group Plan"
)

// Asset categories
const (
	CategoryEquity      = "Equity"
	CategoryFixedIncome = "Fixed Income"
	CategoryBalanced    = "Balanced"
	CategoryAlternative = "Alternative"
	CategoryCash        = "Cash"
)

// Asset types
const (
	AssetTypeGIC    = "GIC"
	AssetTypeETF    = "ETF"
	AssetTypeStock  = "Stock"
	AssetTypeExempt = "Exempt Market Security"

	AssetTypeIndexFixedIncome = "Index Fund - Fixed Income"
	AssetTypeIndexBalanced    = "Index Fund - Balanced"
	AssetTypeIndexCanadian    = "Index Fund - Canadian Equity"
	AssetTypeIndexUS          = "Index Fund - US Equity"
	AssetTypeIndexIntl        = "Index Fund - International Equity"
	AssetTypeIndexGlobal      = "Index Fund - Global Equity"

	AssetTypeMutualFund            = "Mutual Fund"
	AssetTypeMutualFundEquity      = "Mutual Fund - Equity"
	AssetTypeMutualFundFixedIncome = "Mutual Fund - Fixed Income"
	AssetTypeMutualFundBalanced    = "Mutual Fund - Balanced"
)

// Currencies
const (
	CurrencyCAD = "CAD"
	CurrencyUSD = "USD"
)

// Performance horizon labels
const (
	HorizonThreeMonth = "3m"
	HorizonYearToDate = "ytd"
	HorizonOneYear    = "1y"
	HorizonThreeYear  = "3y"
	HorizonInception  = "inception"
)
