package sanmei

// SetsuiriAngles is the solar longitude of the minor solar term (setsu)
// that opens each Sanmeigaku month, indexed by calendar month 1..12.
var SetsuiriAngles = [13]float64{
	0, // unused
	285, 315, 345, 15, 45, 75,
	105, 135, 165, 195, 225, 255,
}

// MonthBranch is the earthly branch of each Sanmeigaku month, indexed by
// calendar month 1..12. December maps to 子 (0).
var MonthBranch = [13]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0}

// zokan describes the hidden stems of one branch: Early governs the first
// EarlyDays after the setsu, Middle the following MiddleDays, Main the
// rest. A zero duration means the segment is absent.
type zokan struct {
	EarlyDays  int
	Early      int
	MiddleDays int
	Middle     int
	Main       int
}

const none = -1

// Stem indices, for readability of the table below.
const (
	jia = iota
	yi
	bing
	ding
	wu
	ji
	geng
	xin
	ren
	gui
)

// zokanTable is indexed by branch 子..亥.
var zokanTable = [12]zokan{
	{0, none, 0, none, gui}, // 子
	{9, gui, 3, xin, ji},    // 丑
	{7, wu, 7, bing, jia},   // 寅
	{0, none, 0, none, yi},  // 卯
	{9, yi, 3, gui, wu},     // 辰
	{7, wu, 7, geng, bing},  // 巳
	{0, none, 9, ji, ding},  // 午
	{9, ding, 3, yi, ji},    // 未
	{7, ji, 7, ren, geng},   // 申
	{0, none, 0, none, xin}, // 酉
	{9, xin, 3, ding, wu},   // 戌
	{12, jia, 0, none, ren}, // 亥
}

// StarMap names the ten main stars by element relation (target minus
// self, mod 5) and by whether the two stems share polarity.
var StarMap = [5][2]string{
	{"石門星", "貫索星"},
	{"調舒星", "鳳閣星"},
	{"司禄星", "禄存星"},
	{"牽牛星", "車騎星"},
	{"玉堂星", "龍高星"},
}
