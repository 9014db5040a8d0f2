package bls

// State is a state-level OEWS area.
type State struct {
	Name string
	FIPS string
}

// States lists the 50 states and the District of Columbia.
var States = []State{
	{"Alabama", "01"},
	{"Alaska", "02"},
	{"Arizona", "04"},
	{"Arkansas", "05"},
	{"California", "06"},
	{"Colorado", "08"},
	{"Connecticut", "09"},
	{"Delaware", "10"},
	{"District of Columbia", "11"},
	{"Florida", "12"},
	{"Georgia", "13"},
	{"Hawaii", "15"},
	{"Idaho", "16"},
	{"Illinois", "17"},
	{"Indiana", "18"},
	{"Iowa", "19"},
	{"Kansas", "20"},
	{"Kentucky", "21"},
	{"Louisiana", "22"},
	{"Maine", "23"},
	{"Maryland", "24"},
	{"Massachusetts", "25"},
	{"Michigan", "26"},
	{"Minnesota", "27"},
	{"Mississippi", "28"},
	{"Missouri", "29"},
	{"Montana", "30"},
	{"Nebraska", "31"},
	{"Nevada", "32"},
	{"New Hampshire", "33"},
	{"New Jersey", "34"},
	{"New Mexico", "35"},
	{"New York", "36"},
	{"North Carolina", "37"},
	{"North Dakota", "38"},
	{"Ohio", "39"},
	{"Oklahoma", "40"},
	{"Oregon", "41"},
	{"Pennsylvania", "42"},
	{"Rhode Island", "44"},
	{"South Carolina", "45"},
	{"South Dakota", "46"},
	{"Tennessee", "47"},
	{"Texas", "48"},
	{"Utah", "49"},
	{"Vermont", "50"},
	{"Virginia", "51"},
	{"Washington", "53"},
	{"West Virginia", "54"},
	{"Wisconsin", "55"},
	{"Wyoming", "56"},
}

// Sector is an OEWS industry, identified by its six-digit NAICS code.
type Sector struct {
	Code string
	Name string
}

// Sectors are the NAICS industries published at the national level.
var Sectors = []Sector{
	{"111000", "Crop Production"},
	{"112000", "Animal Production & Aquaculture"},
	{"113000", "Forestry & Logging"},
	{"211000", "Oil & Gas Extraction"},
	{"212000", "Mining (except Oil & Gas)"},
	{"221000", "Utilities"},
	{"236000", "Construction of Buildings"},
	{"237000", "Heavy & Civil Engineering Construction"},
	{"238000", "Specialty Trade Contractors"},
	{"311000", "Food Manufacturing"},
	{"312000", "Beverage & Tobacco Manufacturing"},
	{"313000", "Textile Mills"},
	{"315000", "Apparel Manufacturing"},
	{"321000", "Wood Product Manufacturing"},
	{"322000", "Paper Manufacturing"},
	{"323000", "Printing & Related Support"},
	{"324000", "Petroleum & Coal Products"},
	{"325000", "Chemical Manufacturing"},
	{"326000", "Plastics & Rubber Products"},
	{"327000", "Nonmetallic Mineral Products"},
	{"331000", "Primary Metal Manufacturing"},
	{"332000", "Fabricated Metal Products"},
	{"333000", "Machinery Manufacturing"},
	{"334000", "Computer & Electronic Products"},
	{"335000", "Electrical Equipment & Appliances"},
	{"336000", "Transportation Equipment"},
	{"337000", "Furniture & Related Products"},
	{"339000", "Miscellaneous Manufacturing"},
	{"423000", "Merchant Wholesalers, Durable Goods"},
	{"424000", "Merchant Wholesalers, Nondurable Goods"},
	{"425000", "Wholesale Electronic Markets"},
	{"441000", "Motor Vehicle & Parts Dealers"},
	{"445000", "Food & Beverage Stores"},
	{"452000", "General Merchandise Stores"},
	{"481000", "Air Transportation"},
	{"482000", "Rail Transportation"},
	{"484000", "Truck Transportation"},
	{"486000", "Pipeline Transportation"},
	{"488000", "Support Activities for Transportation"},
	{"491000", "Postal Service"},
	{"492000", "Couriers & Messengers"},
	{"493000", "Warehousing & Storage"},
	{"511000", "Publishing Industries"},
	{"512000", "Motion Picture & Sound Recording"},
	{"515000", "Broadcasting"},
	{"517000", "Telecommunications"},
	{"518000", "Computing Infrastructure Providers & Data Processing"},
	{"519000", "Web Search Portals & Other Information Services"},
	{"521000", "Monetary Authorities - Central Bank"},
	{"522000", "Credit Intermediation & Related"},
	{"523000", "Securities & Financial Investments"},
	{"524000", "Insurance Carriers & Related"},
	{"525000", "Funds, Trusts & Other Financial Vehicles"},
	{"531000", "Real Estate"},
	{"532000", "Rental & Leasing Services"},
	{"541000", "Professional, Scientific & Technical Services"},
	{"551000", "Management of Companies & Enterprises"},
	{"561000", "Administrative & Support Services"},
	{"562000", "Waste Management & Remediation"},
	{"611000", "Educational Services"},
	{"621000", "Ambulatory Health Care Services"},
	{"622000", "Hospitals"},
	{"623000", "Nursing & Residential Care Facilities"},
	{"624000", "Social Assistance"},
	{"711000", "Performing Arts & Spectator Sports"},
	{"712000", "Museums & Historical Sites"},
	{"713000", "Amusement, Gambling & Recreation"},
	{"721000", "Accommodation"},
	{"722000", "Food Services & Drinking Places"},
	{"811000", "Repair & Maintenance"},
	{"812000", "Personal & Laundry Services"},
	{"813000", "Religious, Civic & Professional Organizations"},
	{"921000", "Executive & Legislative Offices"},
	{"922000", "Justice, Public Order & Safety"},
	{"923000", "Administration of Human Resource Programs"},
	{"924000", "Administration of Environmental Programs"},
	{"925000", "Community & Housing Programs"},
	{"926000", "Administration of Economic Programs"},
	{"928000", "National Security & International Affairs"},
	{"999100", "Federal Government, Civilian"},
	{"999200", "State Government"},
	{"999300", "Local Government"},
}
