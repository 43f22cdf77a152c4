package domain

// KeywordRule associates one category with an ordered keyword list.
// Keywords are lowercase and match as substrings of the case-folded text.
type KeywordRule[C comparable] struct {
	Category C
	Keywords []string
}

// eventRules is listed in catalog order; that order decides ties.
var eventRules = []KeywordRule[EventType]{
	{EventEarthquake, []string{
		"deprem", "sarsıntı", "sismik", "enkaz", "çöktü", "yıkıldı", "hasar", "göçtü",
		"sallandı", "sallanıyor", "yer sallandı", "bina sallandı", "artçı", "artçı sarsıntı",
		"deprem oldu", "deprem hissedildi", "7 büyüklüğünde", "6 büyüklüğünde", "5 büyüklüğünde",
		"richter", "büyüklüğünde deprem", "şiddetinde deprem", "merkez üssü", "fay hattı",
		"bina çöktü", "duvarlar çatladı", "çatlak oluştu", "yıkılma tehlikesi",
	}},
	{EventFlood, []string{
		"sel", "su baskını", "taşkın", "dere taştı", "su altında", "yağmur", "kanalizasyon taştı", "su bastı",
	}},
	{EventForestFire, []string{
		"orman yangını", "ormanlık alanda", "ormanlık", "çalılık yangın", "duman yükseliyor", "orman",
		"alevler yayılıyor", "yangın çıktı",
	}},
	{EventSnowstorm, []string{
		"kar", "tipi", "buzlanma", "kar yağışı", "karla mücadele", "yollar kapandı",
	}},
	{EventLandslide, []string{
		"heyelan", "toprak kayması", "kaya düşmesi", "yamaç",
	}},
	{EventTrafficAccident, []string{
		"trafik kazası", "araç kazası", "zincirleme kaza", "araç devrildi", "otobüs kazası", "kaza oldu",
		"kaza", "çarpışma",
	}},
	{EventMetroTunnelAccident, []string{
		"metro", "tünel", "tramvay", "raylı sistem",
	}},
	{EventBuildingFire, []string{
		"apartman yangın", "fabrika yangın", "iş yeri yangın", "çatı yangın", "daire yangın", "bina yangın",
	}},
	{EventGasLeak, []string{
		"gaz kaçağı", "gaz kokusu", "doğalgaz", "gaz borusu",
	}},
	{EventInfrastructureFailure, []string{
		"su borusu patladı", "elektrik kesintisi", "trafo arıza", "yol çöktü", "su kesintisi",
		"kanalizasyon tıkandı",
	}},
	{EventExplosion, []string{
		"patlama", "patladı", "infilak", "bomba", "patlayıcı", "şiddetli patlama", "patlama sesi",
	}},
	{EventChemicalAccident, []string{
		"kimyasal", "zehirli", "tehlikeli madde", "kimyasal koku", "kimyasal sızıntı", "asit",
		"radyasyon", "biyolojik",
	}},
}

// priorityRules is listed in severity order, most severe first.
var priorityRules = []KeywordRule[Priority]{
	{PriorityCritical, []string{
		"acil", "kritik", "mahsur kaldı", "enkaz", "çöktü", "patlama", "yaralı", "ölüm",
		"can kaybı", "tahliye", "acilen", "şiddetli", "büyük", "yoğun", "hızla", "kuvvetli",
		"şiddet", "yıkıldı", "göçtü", "hayati", "ölü", "ağır yaralı", "mahsur",
		"7 büyüklüğünde", "6 büyüklüğünde", "kurtarma", "enkaz altında", "binalar yıkıldı",
	}},
	{PriorityHigh, []string{
		"tehlike", "risk", "büyüyor", "yayılıyor", "hasar", "zarar", "mağdur", "ciddi",
		"ağır", "çatlak", "tehlikeli", "5 büyüklüğünde", "hafif yaralı", "yıkılma riski",
		"tahliye edilmeli", "bina boşaltılıyor",
	}},
	{PriorityMedium, []string{
		"arıza", "kesinti", "tıkandı", "şüpheli", "kontrol", "tespit", "hafif", "küçük",
	}},
}

// unitAssignments lists responsible units per event type; index 0 is the
// primary responder.
var unitAssignments = map[EventType][]Unit{
	EventEarthquake:            {UnitAFAD, UnitRescueTeams, UnitHealthTeams},
	EventFlood:                 {UnitISKI, UnitFireService, UnitAFAD},
	EventForestFire:            {UnitFireService, UnitForestryDirectorate, UnitAFAD},
	EventSnowstorm:             {UnitRoadMaintenance, UnitAFAD, UnitTransportationDept},
	EventLandslide:             {UnitAFAD, UnitRoadMaintenance, UnitRescueTeams},
	EventTrafficAccident:       {UnitTrafficTeams, UnitHealthTeams, UnitFireService},
	EventMetroTunnelAccident:   {UnitMetroIstanbul, UnitFireService, UnitHealthTeams},
	EventBuildingFire:          {UnitFireService, UnitHealthTeams, UnitIGDAS},
	EventGasLeak:               {UnitIGDAS, UnitFireService, UnitAFAD},
	EventInfrastructureFailure: {UnitISKI, UnitIGDAS, UnitBEDAS, UnitRoadMaintenance},
	EventExplosion:             {UnitAFAD, UnitFireService, UnitHealthTeams, UnitRescueTeams},
	EventChemicalAccident:      {UnitAFAD, UnitFireService, UnitHealthTeams},
}

// Landmark maps a named place to its district. An empty District means the
// place is recognized but its district is ambiguous.
type Landmark struct {
	Name     string
	District string
}

// landmarks is scanned in order; more specific names precede the generic
// industrial-zone names.
var landmarks = []Landmark{
	{"Tuzla OSB", "Tuzla"},
	{"Tuzla Organize Sanayi", "Tuzla"},
	{"Dudullu OSB", "Ümraniye"},
	{"Dudullu Organize Sanayi", "Ümraniye"},
	{"İkitelli OSB", "Başakşehir"},
	{"İkitelli Organize Sanayi", "Başakşehir"},
	{"Beylikdüzü OSB", "Beylikdüzü"},
	{"Beylikdüzü Organize Sanayi", "Beylikdüzü"},
	{"Esenyurt OSB", "Esenyurt"},
	{"Anadolu Yakası OSB", "Tuzla"},
	{"Avrupa Yakası OSB", "Başakşehir"},
	{"Organize Sanayi Bölgesi", ""},
	{"Sanayi Bölgesi", ""},
	{"İstanbul Havalimanı", "Arnavutköy"},
	{"Sabiha Gökçen", "Pendik"},
	{"Atatürk Havalimanı", "Bakırköy"},
	{"Kadıköy İskelesi", "Kadıköy"},
	{"Eminönü İskelesi", "Fatih"},
	{"Haydarpaşa Limanı", "Kadıköy"},
	{"Ambarlı Limanı", "Avcılar"},
}

// districts are Istanbul's district names in scan order. Matching is
// case-sensitive.
var districts = []string{
	"Avcılar", "Kadıköy", "Beşiktaş", "Beyoğlu", "Fatih", "Şişli",
	"Üsküdar", "Bakırköy", "Sarıyer", "Maltepe", "Kartal", "Pendik",
	"Bağcılar", "Bahçelievler", "Esenyurt", "Beylikdüzü", "Büyükçekmece",
	"Silivri", "Çatalca", "Arnavutköy", "Başakşehir", "Esenler",
	"Gaziosmanpaşa", "Eyüpsultan", "Kağıthane", "Sultangazi", "Ataşehir",
	"Ümraniye", "Sancaktepe", "Sultanbeyli", "Çekmeköy", "Beykoz",
	"Şile", "Adalar", "Tuzla",
}

// Districts returns a copy of the district list in scan order.
func Districts() []string {
	return append([]string(nil), districts...)
}

// Landmarks returns a copy of the landmark table in scan order.
func Landmarks() []Landmark {
	return append([]Landmark(nil), landmarks...)
}
