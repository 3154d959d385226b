package generate

// amountRange is the sampling band for one subcategory's payment amount.
type amountRange struct {
	min, max, avg int64
}

// baseAmounts maps group → subcategory → amount band (KRW).
var baseAmounts = map[string]map[string]amountRange{
	"음식": {
		"한식":     {8000, 25000, 15000},
		"양식":     {15000, 45000, 25000},
		"중식":     {8000, 20000, 12000},
		"일식":     {12000, 35000, 20000},
		"카페/디저트": {4000, 12000, 6500},
		"베이커리":   {3000, 15000, 8000},
	},
	"소매/유통": {
		"의복/의류":      {20000, 200000, 80000},
		"화장품소매":      {10000, 150000, 45000},
		"패션잡화":       {15000, 100000, 40000},
		"인터넷쇼핑":      {8000, 120000, 35000},
		"인테리어/가정용품":  {10000, 80000, 30000},
		"스포츠/레져용품":   {20000, 150000, 60000},
		"서적/도서":      {8000, 40000, 18000},
	},
	"생활서비스": {
		"교통서비스":     {1370, 30000, 8000},
		"미용서비스":     {15000, 150000, 50000},
		"차량관리/서비스":  {30000, 200000, 80000},
		"여행":        {50000, 1000000, 200000},
		"사우나":       {8000, 30000, 12000},
	},
	"여가/오락": {
		"일반스포츠":      {60000, 200000, 100000},
		"취미/오락":      {10000, 100000, 35000},
		"숙박":         {50000, 300000, 120000},
		"요가/단전/마사지":  {30000, 150000, 70000},
	},
	"공연/전시": {
		"공연관람": {30000, 150000, 70000},
		"전시장":  {10000, 30000, 18000},
		"경기관람": {20000, 80000, 40000},
	},
	"학문/교육": {
		"외국어학원":      {150000, 600000, 300000},
		"서적/도서":      {8000, 40000, 18000},
		"기술/직업교육학원":  {100000, 500000, 250000},
		"예체능계학원":     {100000, 400000, 200000},
	},
	"미디어/통신": {
		"인터넷쇼핑": {5000, 80000, 25000},
		"기타결제":  {10000, 50000, 20000},
	},
}

// hourWeights biases the generated payment hour per group.
var hourWeights = map[string][]float64{
	"음식":    {0.02, 0.01, 0.01, 0.01, 0.01, 0.02, 0.04, 0.08, 0.06, 0.04, 0.05, 0.08, 0.12, 0.08, 0.05, 0.04, 0.05, 0.06, 0.08, 0.10, 0.08, 0.06, 0.04, 0.03},
	"생활서비스": {0.02, 0.01, 0.01, 0.01, 0.02, 0.04, 0.08, 0.12, 0.10, 0.08, 0.06, 0.05, 0.06, 0.05, 0.04, 0.04, 0.05, 0.08, 0.10, 0.08, 0.06, 0.04, 0.03, 0.02},
}

var defaultHourWeights = []float64{0.02, 0.01, 0.01, 0.01, 0.01, 0.02, 0.03, 0.05, 0.06, 0.08, 0.10, 0.08, 0.08, 0.07, 0.06, 0.06, 0.07, 0.08, 0.09, 0.08, 0.06, 0.05, 0.04, 0.03}

// categoryPlan holds one group's monthly frequency share and its
// subcategory preference distribution.
type categoryPlan struct {
	freq  int
	prefs map[string]float64
}

// persona models one spending stereotype: a budget multiplier and
// per-group plans.
type persona struct {
	budget     float64
	categories map[string]categoryPlan
}

var malePersonas = map[string]persona{
	"IT_개발자": {
		budget: 1.2,
		categories: map[string]categoryPlan{
			"음식":    {35, map[string]float64{"카페/디저트": 0.3, "중식": 0.25, "한식": 0.2, "양식": 0.15, "일식": 0.1}},
			"소매/유통": {18, map[string]float64{"인터넷쇼핑": 0.4, "의복/의류": 0.25, "서적/도서": 0.15, "인테리어/가정용품": 0.1, "화장품소매": 0.05, "패션잡화": 0.05}},
			"여가/오락": {25, map[string]float64{"취미/오락": 0.8, "숙박": 0.15, "일반스포츠": 0.03, "요가/단전/마사지": 0.02}},
			"생활서비스": {10, map[string]float64{"교통서비스": 0.7, "미용서비스": 0.2, "차량관리/서비스": 0.05, "여행": 0.03, "사우나": 0.02}},
			"미디어/통신": {20, map[string]float64{"기타결제": 0.6, "인터넷쇼핑": 0.4}},
			"공연/전시": {2, map[string]float64{"공연관람": 0.5, "전시장": 0.3, "경기관람": 0.2}},
			"학문/교육": {3, map[string]float64{"기술/직업교육학원": 0.6, "외국어학원": 0.3, "서적/도서": 0.1}},
		},
	},
	"헬스_마니아": {
		budget: 1.1,
		categories: map[string]categoryPlan{
			"음식":    {45, map[string]float64{"한식": 0.4, "양식": 0.25, "카페/디저트": 0.15, "베이커리": 0.1, "중식": 0.05, "일식": 0.05}},
			"여가/오락": {35, map[string]float64{"일반스포츠": 0.7, "요가/단전/마사지": 0.15, "취미/오락": 0.1, "숙박": 0.05}},
			"소매/유통": {22, map[string]float64{"스포츠/레져용품": 0.5, "의복/의류": 0.2, "인터넷쇼핑": 0.1, "화장품소매": 0.05, "패션잡화": 0.05, "인테리어/가정용품": 0.1}},
			"생활서비스": {15, map[string]float64{"교통서비스": 0.5, "미용서비스": 0.25, "사우나": 0.15, "여행": 0.08, "차량관리/서비스": 0.02}},
			"공연/전시": {2, map[string]float64{"경기관람": 0.7, "공연관람": 0.2, "전시장": 0.1}},
			"학문/교육": {3, map[string]float64{"예체능계학원": 0.6, "기술/직업교육학원": 0.2, "외국어학원": 0.2}},
		},
	},
	"미니멀_절약형": {
		budget: 0.7,
		categories: map[string]categoryPlan{
			"음식":    {35, map[string]float64{"중식": 0.35, "한식": 0.3, "카페/디저트": 0.2, "베이커리": 0.1, "양식": 0.03, "일식": 0.02}},
			"소매/유통": {8, map[string]float64{"인터넷쇼핑": 0.5, "의복/의류": 0.15, "화장품소매": 0.1, "서적/도서": 0.15, "인테리어/가정용품": 0.1}},
			"여가/오락": {10, map[string]float64{"취미/오락": 0.7, "숙박": 0.2, "일반스포츠": 0.05, "요가/단전/마사지": 0.05}},
			"생활서비스": {12, map[string]float64{"교통서비스": 0.8, "미용서비스": 0.1, "여행": 0.05, "차량관리/서비스": 0.05}},
			"학문/교육": {5, map[string]float64{"서적/도서": 0.5, "외국어학원": 0.3, "기술/직업교육학원": 0.2}},
			"공연/전시": {1, map[string]float64{"전시장": 0.6, "공연관람": 0.3, "경기관람": 0.1}},
			"미디어/통신": {10, map[string]float64{"기타결제": 0.6, "인터넷쇼핑": 0.4}},
		},
	},
}

var femalePersonas = map[string]persona{
	"카페_인플루언서": {
		budget: 1.0,
		categories: map[string]categoryPlan{
			"음식":    {55, map[string]float64{"카페/디저트": 0.4, "베이커리": 0.25, "양식": 0.15, "한식": 0.1, "일식": 0.1}},
			"소매/유통": {25, map[string]float64{"화장품소매": 0.35, "패션잡화": 0.25, "의복/의류": 0.2, "인터넷쇼핑": 0.2}},
			"생활서비스": {18, map[string]float64{"미용서비스": 0.5, "교통서비스": 0.35, "여행": 0.15}},
			"여가/오락": {15, map[string]float64{"취미/오락": 0.6, "숙박": 0.3, "요가/단전/마사지": 0.1}},
			"공연/전시": {5, map[string]float64{"공연관람": 0.5, "전시장": 0.4, "경기관람": 0.1}},
			"학문/교육": {2, map[string]float64{"예체능계학원": 0.4, "외국어학원": 0.3, "서적/도서": 0.3}},
			"미디어/통신": {8, map[string]float64{"인터넷쇼핑": 0.6, "기타결제": 0.4}},
		},
	},
	"쇼핑_러버": {
		budget: 1.4,
		categories: map[string]categoryPlan{
			"음식":    {42, map[string]float64{"카페/디저트": 0.3, "양식": 0.25, "베이커리": 0.2, "한식": 0.15, "일식": 0.1}},
			"소매/유통": {45, map[string]float64{"의복/의류": 0.35, "화장품소매": 0.25, "패션잡화": 0.2, "인터넷쇼핑": 0.2}},
			"생활서비스": {20, map[string]float64{"교통서비스": 0.4, "미용서비스": 0.35, "여행": 0.25}},
			"여가/오락": {15, map[string]float64{"취미/오락": 0.5, "숙박": 0.3, "요가/단전/마사지": 0.2}},
			"공연/전시": {5, map[string]float64{"공연관람": 0.6, "전시장": 0.3, "경기관람": 0.1}},
			"학문/교육": {1, map[string]float64{"외국어학원": 0.4, "서적/도서": 0.6}},
			"미디어/통신": {12, map[string]float64{"인터넷쇼핑": 0.8, "기타결제": 0.2}},
		},
	},
	"헬시_라이프": {
		budget: 1.1,
		categories: map[string]categoryPlan{
			"음식":    {42, map[string]float64{"한식": 0.3, "카페/디저트": 0.25, "양식": 0.2, "베이커리": 0.15, "일식": 0.1}},
			"여가/오락": {30, map[string]float64{"일반스포츠": 0.5, "요가/단전/마사지": 0.3, "취미/오락": 0.2}},
			"소매/유통": {20, map[string]float64{"스포츠/레져용품": 0.35, "화장품소매": 0.25, "의복/의류": 0.2, "인터넷쇼핑": 0.2}},
			"생활서비스": {18, map[string]float64{"미용서비스": 0.35, "교통서비스": 0.35, "여행": 0.3}},
			"공연/전시": {2, map[string]float64{"공연관람": 0.5, "전시장": 0.3, "경기관람": 0.2}},
			"학문/교육": {3, map[string]float64{"예체능계학원": 0.5, "외국어학원": 0.3, "서적/도서": 0.2}},
			"미디어/통신": {5, map[string]float64{"인터넷쇼핑": 0.7, "기타결제": 0.3}},
		},
	},
}
