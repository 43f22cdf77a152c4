package dataset

import "github.com/couchcryptid/akom-triage-service/internal/domain"

// eventTemplate describes how synthetic reports of one event type are
// written and labeled. {konum} in a template is replaced by a location.
type eventTemplate struct {
	event     domain.EventType
	units     []domain.Unit
	priority  []weightedPriority
	templates []string
}

type weightedPriority struct {
	priority domain.Priority
	weight   float64
}

var eventTemplates = []eventTemplate{
	{
		event: domain.EventEarthquake,
		units: []domain.Unit{domain.UnitAFAD, domain.UnitRescueTeams, domain.UnitHealthTeams, domain.UnitFireService},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.6}, {domain.PriorityHigh, 0.3}, {domain.PriorityMedium, 0.1},
		},
		templates: []string{
			"{konum}'de şiddetli deprem hissedildi, binalarda hasar var. İlgili ekipler acilen yönlendirilsin.",
			"{konum} bölgesinde deprem sonrası enkaz altında mahsur kalan vatandaşlar var. Acil müdahale gerekiyor.",
			"{konum}'de deprem nedeniyle bina çökmesi meydana geldi. Kurtarma ekipleri talep ediliyor.",
			"{konum} civarında deprem sonrası hasar tespit edildi, çatlaklar oluşmuş durumda.",
			"{konum}'de şiddetli sarsıntı hissedildi, panik yaşanıyor. Durum tespiti için ekip isteniyor.",
			"{konum} mahallesinde deprem sonrası gaz kaçağı şüphesi var. Acil müdahale lazım.",
			"{konum}'de deprem nedeniyle yol çökmesi meydana geldi. Trafik akışı durdu.",
		},
	},
	{
		event: domain.EventFlood,
		units: []domain.Unit{domain.UnitISKI, domain.UnitFireService, domain.UnitAFAD, domain.UnitRoadMaintenance},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.4}, {domain.PriorityHigh, 0.4}, {domain.PriorityMedium, 0.2},
		},
		templates: []string{
			"{konum}'de yoğun yağış nedeniyle sel baskını yaşanıyor. Alt geçitler su altında kaldı.",
			"{konum} bölgesinde dere taştı, evlere su girdi. Acil tahliye gerekiyor.",
			"{konum}'de aşırı yağmur sonrası sokaklar göle döndü. Araçlar mahsur kaldı.",
			"{konum} caddesinde kanalizasyon taştı. Vatandaşlar mağdur durumda.",
			"{konum}'de sel suları yükseliyor, bodrum katlar su altında. Acil pompa desteği isteniyor.",
			"{konum} mahallesinde su baskını nedeniyle elektrik kesintisi yaşanıyor.",
		},
	},
	{
		event: domain.EventForestFire,
		units: []domain.Unit{domain.UnitFireService, domain.UnitForestryDirectorate, domain.UnitAFAD},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.5}, {domain.PriorityHigh, 0.35}, {domain.PriorityMedium, 0.15},
		},
		templates: []string{
			"{konum} yakınlarında orman yangını çıktı. Alevler hızla yayılıyor.",
			"{konum} bölgesinde ormanlık alanda büyük yangın var. Helikopter desteği gerekiyor.",
			"{konum}'de çalılık alanda yangın başladı. Rüzgar nedeniyle tehlike büyüyor.",
			"{konum} civarında orman yangını yerleşim yerlerine yaklaşıyor. Tahliye başlatılmalı.",
			"{konum}'de şüpheli duman yükseliyor. Yangın riski mevcut, kontrol edilmeli.",
		},
	},
	{
		event: domain.EventSnowstorm,
		units: []domain.Unit{domain.UnitRoadMaintenance, domain.UnitAFAD, domain.UnitTransportationDept},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.3}, {domain.PriorityHigh, 0.4}, {domain.PriorityMedium, 0.3},
		},
		templates: []string{
			"{konum}'de yoğun kar yağışı nedeniyle yollar kapandı. Araçlar mahsur kaldı.",
			"{konum} bölgesinde buzlanma nedeniyle trafik kazaları yaşanıyor. Tuzlama ekibi isteniyor.",
			"{konum}'de kar kalınlığı artıyor, toplu taşıma durdu. Karla mücadele ekibi gerekli.",
			"{konum} mahallesinde yoğun kar nedeniyle çatılarda çökme riski var.",
			"{konum}'de tipi nedeniyle görüş mesafesi sıfıra düştü. Sürücüler uyarılmalı.",
			"{konum} civarında kar fırtınası sürüyor, elektrik direkleri devrildi.",
		},
	},
	{
		event: domain.EventLandslide,
		units: []domain.Unit{domain.UnitAFAD, domain.UnitRoadMaintenance, domain.UnitRescueTeams},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.5}, {domain.PriorityHigh, 0.35}, {domain.PriorityMedium, 0.15},
		},
		templates: []string{
			"{konum}'de heyelan meydana geldi. Yol tamamen kapandı.",
			"{konum} bölgesinde toprak kayması nedeniyle evler tehlike altında.",
			"{konum}'de şiddetli yağış sonrası heyelan riski oluştu. Bölge boşaltılmalı.",
			"{konum} yakınlarında yamaçtan kaya düşmesi var. Yol trafiğe kapatıldı.",
			"{konum}'de heyelan sonrası araçlar toprak altında kaldı. Kurtarma ekibi şart.",
		},
	},
	{
		event: domain.EventTrafficAccident,
		units: []domain.Unit{domain.UnitTrafficTeams, domain.UnitHealthTeams, domain.UnitFireService, domain.UnitRoadMaintenance},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.4}, {domain.PriorityHigh, 0.4}, {domain.PriorityMedium, 0.2},
		},
		templates: []string{
			"{konum}'de zincirleme trafik kazası meydana geldi. Çok sayıda yaralı var.",
			"{konum} kavşağında ağır tonajlı araç devrildi. Yol trafiğe kapandı.",
			"{konum}'de otobüs kazası yaşandı. Ambulans ve itfaiye acil gerekli.",
			"{konum} köprüsünde çoklu araç kazası var. Trafik felç oldu.",
			"{konum}'de trafik kazası sonrası yakıt sızıntısı var. Yangın riski mevcut.",
			"{konum} tünelinde kaza meydana geldi. Havalandırma sorunu yaşanıyor.",
		},
	},
	{
		event: domain.EventMetroTunnelAccident,
		units: []domain.Unit{domain.UnitMetroIstanbul, domain.UnitFireService, domain.UnitHealthTeams, domain.UnitAFAD},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.6}, {domain.PriorityHigh, 0.3}, {domain.PriorityMedium, 0.1},
		},
		templates: []string{
			"{konum} metro istasyonunda teknik arıza nedeniyle yolcular mahsur kaldı.",
			"{konum}'de metro tünelinde yangın çıktı. Tahliye başlatıldı.",
			"{konum} metro hattında elektrik kesintisi var. Vagonlar tünelde durdu.",
			"{konum}'de tünel girişinde göçük meydana geldi. Trafik durdu.",
			"{konum} metro istasyonunda duman yayılıyor. Acil müdahale gerekli.",
		},
	},
	{
		event: domain.EventBuildingFire,
		units: []domain.Unit{domain.UnitFireService, domain.UnitHealthTeams, domain.UnitIGDAS},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.5}, {domain.PriorityHigh, 0.35}, {domain.PriorityMedium, 0.15},
		},
		templates: []string{
			"{konum}'de apartmanda yangın çıktı. Üst katlarda mahsur kalanlar var.",
			"{konum} bölgesinde fabrikada büyük yangın var. Birden fazla itfaiye ekibi gerekli.",
			"{konum}'de iş yerinde yangın başladı. Dumandan etkilenenler var.",
			"{konum} apartmanında gaz patlaması sonrası yangın çıktı. Acil müdahale şart.",
			"{konum}'de çatı katında yangın var. Bitişik binalara sıçrama riski mevcut.",
			"{konum} sitesinde elektrik kontağından yangın çıktı. Tahliye ediliyor.",
		},
	},
	{
		event: domain.EventGasLeak,
		units: []domain.Unit{domain.UnitIGDAS, domain.UnitFireService, domain.UnitAFAD},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.5}, {domain.PriorityHigh, 0.35}, {domain.PriorityMedium, 0.15},
		},
		templates: []string{
			"{konum}'de yoğun gaz kokusu alınıyor. Patlama riski var, acil müdahale gerekli.",
			"{konum} sokağında doğalgaz borusu patladı. Bölge tahliye edilmeli.",
			"{konum}'de inşaat çalışması sırasında gaz hattı hasar gördü.",
			"{konum} apartmanında gaz kaçağı tespit edildi. Elektrik kesilmeli.",
			"{konum}'de ana gaz hattında sızıntı var. Trafik yönlendirilmeli.",
		},
	},
	{
		event: domain.EventInfrastructureFailure,
		units: []domain.Unit{domain.UnitISKI, domain.UnitIGDAS, domain.UnitBEDAS, domain.UnitRoadMaintenance},
		priority: []weightedPriority{
			{domain.PriorityCritical, 0.2}, {domain.PriorityHigh, 0.4}, {domain.PriorityMedium, 0.4},
		},
		templates: []string{
			"{konum}'de ana su borusu patladı. Sokak su altında kaldı.",
			"{konum} bölgesinde elektrik trafosu arızalandı. Geniş çaplı kesinti var.",
			"{konum}'de yol çöktü, altyapı hasarı mevcut. Tehlike oluşturdu.",
			"{konum} mahallesinde uzun süredir su kesintisi yaşanıyor. Vatandaşlar şikayetçi.",
			"{konum}'de kanalizasyon tıkandı, kötü koku yayılıyor. Acil temizlik gerekli.",
			"{konum} caddesinde aydınlatma direkleri devrildi. Tehlike arz ediyor.",
		},
	},
}

// neighborhoods lists sample neighborhoods per district, in district scan
// order.
var neighborhoods = []struct {
	district string
	names    []string
}{
	{"Avcılar", []string{"Cihangir", "Denizköşkler", "Firuzköy", "Gümüşpala", "Mustafa Kemal Paşa", "Yeşilkent", "Ambarlı", "Tahtakale"}},
	{"Kadıköy", []string{"Caferağa", "Fenerbahçe", "Göztepe", "Koşuyolu", "Moda", "Suadiye", "Bostancı", "Erenköy", "Fikirtepe"}},
	{"Beşiktaş", []string{"Akatlar", "Bebek", "Etiler", "Levent", "Ortaköy", "Arnavutköy", "Dikilitaş", "Yıldız"}},
	{"Beyoğlu", []string{"Cihangir", "Galata", "Karaköy", "Taksim", "Tarlabaşı", "Kasımpaşa", "Dolapdere"}},
	{"Fatih", []string{"Aksaray", "Balat", "Eminönü", "Sultanahmet", "Vefa", "Karagümrük", "Saraçhane", "Zeyrek"}},
	{"Şişli", []string{"Mecidiyeköy", "Nişantaşı", "Osmanbey", "Fulya", "Bomonti", "Halaskargazi", "Teşvikiye"}},
	{"Üsküdar", []string{"Acıbadem", "Altunizade", "Bağlarbaşı", "Çengelköy", "Kuzguncuk", "Ümraniye", "Bulgurlu"}},
	{"Bakırköy", []string{"Ataköy", "Bahçelievler", "Florya", "Yeşilköy", "Şenlikköy", "Osmaniye", "Kartaltepe"}},
	{"Sarıyer", []string{"Baltalimanı", "Emirgan", "İstinye", "Maslak", "Tarabya", "Rumeli Feneri", "Yeniköy"}},
	{"Maltepe", []string{"Altıntepe", "Bağlarbaşı", "Cevizli", "Girne", "Zümrütevler", "Küçükyalı", "İdealtepe"}},
	{"Kartal", []string{"Cevizli", "Kordonboyu", "Soğanlık", "Uğur Mumcu", "Yakacık", "Hürriyet", "Esentepe"}},
	{"Pendik", []string{"Batı", "Esenyalı", "Güzelyalı", "Kaynarca", "Kurtköy", "Yenişehir", "Velibaba"}},
	{"Bağcılar", []string{"Barbaros", "Demirkapı", "Fevzi Çakmak", "Güneşli", "Kirazlı", "Mahmutbey", "Yıldıztepe"}},
	{"Bahçelievler", []string{"Bahçelievler", "Kocasinan", "Soğanlı", "Şirinevler", "Yenibosna", "Zafer", "Cumhuriyet"}},
	{"Esenyurt", []string{"Ardıçlı", "Fatih", "İnönü", "Kıraç", "Mehterçeşme", "Saadetdere", "Yenikent"}},
	{"Beylikdüzü", []string{"Adnan Kahveci", "Barış", "Büyükşehir", "Cumhuriyet", "Dereağzı", "Gürpınar", "Yakuplu"}},
	{"Büyükçekmece", []string{"Bahçelievler", "Fatih", "Güzelce", "Kumburgaz", "Mimarsinan", "Pınartepe", "Tepecik"}},
	{"Silivri", []string{"Alibey", "Cumhuriyet", "Fatih", "Gümüşyaka", "Ortaköy", "Piri Mehmet Paşa", "Selimpaşa"}},
	{"Çatalca", []string{"Ferhatpaşa", "Kaleiçi", "Kestanelik", "Subaşı", "Yalıköy", "Çiftlikköy"}},
	{"Arnavutköy", []string{"Anadolu", "Boğazköy", "Haraççı", "İmrahor", "Taşoluk", "Yeşilbayır"}},
	{"Başakşehir", []string{"Altınşehir", "Bahçeşehir 1. Kısım", "Bahçeşehir 2. Kısım", "Güvercintepe", "İkitelli", "Kayabaşı"}},
	{"Esenler", []string{"Atışalanı", "Davutpaşa", "Fevzi Çakmak", "Kemer", "Menderes", "Oruçreis", "Tuna"}},
	{"Gaziosmanpaşa", []string{"Bağlarbaşı", "Fevzi Çakmak", "Karadeniz", "Karlıtepe", "Mevlana", "Pazariçi", "Yıldıztabya"}},
	{"Eyüpsultan", []string{"Alibeyköy", "Defterdar", "Güzeltepe", "İslambey", "Nişanca", "Rami", "Yeşilpınar"}},
	{"Kağıthane", []string{"Çağlayan", "Gültepe", "Hamidiye", "Harmantepe", "Merkez", "Nurtepe", "Ortabayır"}},
	{"Sultangazi", []string{"50. Yıl", "75. Yıl", "Cebeci", "Esentepe", "Gazi", "Sultançiftliği", "Yunusemre"}},
	{"Ataşehir", []string{"Atatürk", "Barbaros", "Ferhatpaşa", "İçerenköy", "Küçükbakkalköy", "Yenisahra"}},
	{"Ümraniye", []string{"Armağanevler", "Çakmak", "Ihlamurkuyu", "Kazım Karabekir", "Namık Kemal", "Tantavi"}},
	{"Sancaktepe", []string{"Abdurrahman Gazi", "Emek", "Meclis", "Osmangazi", "Sarıgazi", "Yenidoğan"}},
	{"Sultanbeyli", []string{"Abdurrahman Gazi", "Ahmet Yesevi", "Battalgazi", "Fatih", "Mecidiye", "Yavuz Selim"}},
	{"Çekmeköy", []string{"Alemdağ", "Çatalmeşe", "Hamidiye", "Merkez", "Ömerli", "Taşdelen"}},
	{"Beykoz", []string{"Acarlar", "Anadolu Hisarı", "Çubuklu", "Kavacık", "Paşabahçe", "Riva"}},
	{"Şile", []string{"Ağva", "Balibey", "Hacılli", "Kumbaba", "Sahilköy", "Sofular"}},
	{"Adalar", []string{"Burgazada", "Büyükada", "Heybeliada", "Kınalıada", "Sedefadası"}},
	{"Tuzla", []string{"Aydınlı", "Aydıntepe", "Cami", "İçmeler", "Mimar Sinan", "Postane", "Şifa"}},
}

var avenues = []string{
	"Cumhuriyet Caddesi", "Atatürk Caddesi", "İstiklal Caddesi", "Bağdat Caddesi",
	"Halaskargazi Caddesi", "Barbaros Bulvarı", "Büyükdere Caddesi", "Vatan Caddesi",
	"Millet Caddesi", "Kennedy Caddesi", "Sahil Yolu", "Mecidiyeköy Yolu",
	"Beşiktaş Caddesi", "Kadıköy Caddesi", "Taksim Meydanı", "Kartal Caddesi",
}

var streets = []string{
	"Yıldız Sokak", "Güneş Sokak", "Çiçek Sokak", "Gül Sokak", "Lale Sokak",
	"Papatya Sokak", "Menekşe Sokak", "Orkide Sokak", "Karanfil Sokak",
	"1. Sokak", "2. Sokak", "3. Sokak", "4. Sokak", "5. Sokak",
	"Atatürk Sokak", "Fatih Sokak", "Mimar Sinan Sokak", "Yunus Emre Sokak",
}
