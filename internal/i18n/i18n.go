// Package i18n holds the static UI string tables for Japanese and English.
package i18n

import "github.com/subsco/subsco/internal/model"

// Table is the full set of UI strings for one language.
type Table struct {
	AppTitle string
	AppDesc  string
	Currency string

	CycleMonthly string
	CycleYearly  string
	PerMonth     string
	PerYear      string

	TabList     string
	TabMatrix   string
	TabAnalysis string
	TabHistory  string
	TabSettings string

	StatsTotal   string
	StatsActive  string
	StatsItems   string
	NoSubs       string
	AddFirst     string
	SortDate     string
	SortPrice    string
	SortSat      string
	CardExpired  string
	CardToday    string
	CardDaysLeft string // contains %d

	StatusPaused string
	StatusResume string
	StatusStop   string

	MatrixAxisX string
	MatrixAxisY string
	MatrixHint  string

	BudgetCheck     string
	IncomeLabel     string
	Ratio           string
	ByCategory      string
	BySatisfaction  string
	SpendingRanking string
	BudgetMessages  [4]string // comfortable, normal, elevated, excessive

	HistoryTitle string
	NoHistory    string
	LabelCancel  string
	LabelResume  string
	LabelNew     string

	SettingsTitle  string
	Language       string
	DarkMode       string
	DataManagement string
	Backup         string
	Restore        string
	Reset          string
	ResetWarning   string
	ImportError    string
	DeleteConfirm  string // contains %s

	FormTitle     string
	FormEditTitle string
	FormName      string
	FormAmount    string
	FormCategory  string
	FormCycle     string
	FormBilling   string
	FormSat       string
	FormFreq      string
	FormSave      string
	FormCancel    string

	SatLevels  [5]string
	FreqLevels [5]string

	Categories map[model.Category]string
}

var tables = map[model.Language]Table{
	model.LanguageJA: {
		AppTitle: "Subsco",
		AppDesc:  "満足度×頻度で最適化",
		Currency: "¥",

		CycleMonthly: "月額",
		CycleYearly:  "年額",
		PerMonth:     "月",
		PerYear:      "年",

		TabList:     "一覧",
		TabMatrix:   "分析",
		TabAnalysis: "グラフ",
		TabHistory:  "履歴",
		TabSettings: "設定",

		StatsTotal:   "合計支出",
		StatsActive:  "契約中",
		StatsItems:   "件",
		NoSubs:       "サブスクリプションがありません",
		AddFirst:     "最初のサブスクを追加",
		SortDate:     "更新が近い順",
		SortPrice:    "金額が高い順",
		SortSat:      "満足度が低い順",
		CardExpired:  "期限切れ",
		CardToday:    "今日請求",
		CardDaysLeft: "あと%d日",

		StatusPaused: "停止中",
		StatusResume: "再開",
		StatusStop:   "停止",

		MatrixAxisX: "満足度",
		MatrixAxisY: "頻度",
		MatrixHint:  "右下にあるサービスほど見直しの優先度が高いです",

		BudgetCheck:     "家計負担率チェック",
		IncomeLabel:     "手取り月収を入力",
		Ratio:           "固定費率",
		ByCategory:      "カテゴリ別",
		BySatisfaction:  "満足度別",
		SpendingRanking: "支出ランキング (カテゴリ)",
		BudgetMessages: [4]string{
			"素晴らしい！余裕があります",
			"適正範囲内です",
			"少し高いかも…見直し検討",
			"使いすぎの可能性！要見直し",
		},

		HistoryTitle: "活動履歴",
		NoHistory:    "履歴はありません",
		LabelCancel:  "解約",
		LabelResume:  "再契約",
		LabelNew:     "新規契約",

		SettingsTitle:  "設定",
		Language:       "言語",
		DarkMode:       "ダークモード",
		DataManagement: "データ管理",
		Backup:         "バックアップ",
		Restore:        "復元",
		Reset:          "リセット",
		ResetWarning:   "すべてのデータが削除されます。本当によろしいですか？",
		ImportError:    "データの復元に失敗しました",
		DeleteConfirm:  "「%s」を解約しますか？",

		FormTitle:     "新規サービス",
		FormEditTitle: "編集",
		FormName:      "サービス名",
		FormAmount:    "料金",
		FormCategory:  "カテゴリ",
		FormCycle:     "支払いサイクル",
		FormBilling:   "次回請求日",
		FormSat:       "満足度",
		FormFreq:      "使用頻度",
		FormSave:      "保存",
		FormCancel:    "キャンセル",

		SatLevels:  [5]string{"不満", "やや不満", "普通", "満足", "大満足"},
		FreqLevels: [5]string{"ほぼ未使用", "たまに", "週1～2", "毎日", "ヘビー"},

		Categories: map[model.Category]string{
			model.CategoryStreaming: "動画/音楽",
			model.CategoryCloud:     "クラウド",
			model.CategoryTool:      "仕事ツール",
			model.CategoryLearning:  "学習/資格",
			model.CategoryHealth:    "健康/フィットネス",
			model.CategoryDelivery:  "配達",
			model.CategoryNews:      "ニュース/雑誌",
			model.CategoryGame:      "ゲーム/娯楽",
			model.CategoryOther:     "その他",
		},
	},
	model.LanguageEN: {
		AppTitle: "Subsco",
		AppDesc:  "Optimize with Satisfaction x Frequency",
		Currency: "$",

		CycleMonthly: "Monthly",
		CycleYearly:  "Yearly",
		PerMonth:     "/mo",
		PerYear:      "/yr",

		TabList:     "List",
		TabMatrix:   "Matrix",
		TabAnalysis: "Analysis",
		TabHistory:  "History",
		TabSettings: "Settings",

		StatsTotal:   "Total Cost",
		StatsActive:  "Active",
		StatsItems:   "items",
		NoSubs:       "No subscriptions yet",
		AddFirst:     "Add your first subscription",
		SortDate:     "Next Billing",
		SortPrice:    "Price (High to Low)",
		SortSat:      "Satisfaction (Low to High)",
		CardExpired:  "Expired",
		CardToday:    "Due Today",
		CardDaysLeft: "%dd left",

		StatusPaused: "Paused",
		StatusResume: "Resume",
		StatusStop:   "Pause",

		MatrixAxisX: "Satisfaction",
		MatrixAxisY: "Frequency",
		MatrixHint:  "Services in the bottom-right should be reviewed first",

		BudgetCheck:     "Budget Impact Check",
		IncomeLabel:     "Monthly Income",
		Ratio:           "Fixed Cost Ratio",
		ByCategory:      "By Category",
		BySatisfaction:  "By Satisfaction",
		SpendingRanking: "Spending Ranking (Category)",
		BudgetMessages: [4]string{
			"Excellent! Plenty of headroom",
			"Within a healthy range",
			"A little high - worth a review",
			"Possibly overspending! Review now",
		},

		HistoryTitle: "Activity History",
		NoHistory:    "No history yet",
		LabelCancel:  "Cancelled",
		LabelResume:  "Resumed",
		LabelNew:     "New",

		SettingsTitle:  "Settings",
		Language:       "Language",
		DarkMode:       "Dark Mode",
		DataManagement: "Data Management",
		Backup:         "Backup",
		Restore:        "Restore",
		Reset:          "Reset",
		ResetWarning:   "All data will be deleted. Are you sure?",
		ImportError:    "Failed to restore data",
		DeleteConfirm:  "Cancel \"%s\"?",

		FormTitle:     "New Service",
		FormEditTitle: "Edit",
		FormName:      "Service Name",
		FormAmount:    "Cost",
		FormCategory:  "Category",
		FormCycle:     "Billing Cycle",
		FormBilling:   "Next Billing Date",
		FormSat:       "Satisfaction",
		FormFreq:      "Usage Frequency",
		FormSave:      "Save",
		FormCancel:    "Cancel",

		SatLevels:  [5]string{"Poor", "Fair", "Good", "Great", "Excellent"},
		FreqLevels: [5]string{"Rarely", "Sometimes", "1-2x/week", "Daily", "Heavy"},

		Categories: map[model.Category]string{
			model.CategoryStreaming: "Video/Music",
			model.CategoryCloud:     "Cloud",
			model.CategoryTool:      "Tools",
			model.CategoryLearning:  "Learning",
			model.CategoryHealth:    "Health/Fitness",
			model.CategoryDelivery:  "Delivery",
			model.CategoryNews:      "News/Magazine",
			model.CategoryGame:      "Gaming",
			model.CategoryOther:     "Other",
		},
	},
}

// For returns the string table for a language, defaulting to Japanese.
func For(lang model.Language) Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[model.LanguageJA]
}

// ServicePresets are common service names offered by the add form.
var ServicePresets = []string{
	"Netflix", "Spotify", "YouTube Premium", "Amazon Prime", "Disney+", "Hulu", "Apple Music",
	"iCloud+", "Google One", "Dropbox", "Adobe Creative Cloud", "Microsoft 365", "GitHub",
	"ChatGPT Plus", "Notion", "Evernote", "Udemy", "Coursera", "Duolingo Plus", "RIZAP",
	"Uber Eats Pass", "Nikkei", "PlayStation Plus", "Nintendo Switch Online", "Xbox Game Pass",
}
