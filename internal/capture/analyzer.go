package capture

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// AssetDraft is the suggested record produced by smart capture. The user
// reviews and applies it; the draft itself is never stored.
type AssetDraft struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Remark   string          `json:"remark"`
	Source   string          `json:"source"`
}

// Analyzer turns captured text into an asset draft.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*AssetDraft, error)
}

var amountPatterns = []struct {
	re         *regexp.Regexp
	multiplier decimal.Decimal
}{
	// 12.34万 first, so the plain-number pattern cannot shadow the unit.
	{regexp.MustCompile(`[\d,]+\.?\d*\s*万`), decimal.NewFromInt(10000)},
	{regexp.MustCompile(`[¥￥$]\s*[\d,]+\.?\d*`), decimal.NewFromInt(1)},
	{regexp.MustCompile(`[\d,]+\.?\d*\s*元`), decimal.NewFromInt(1)},
	{regexp.MustCompile(`[\d,]+\.?\d*`), decimal.NewFromInt(1)},
}

var amountStripRe = regexp.MustCompile(`[¥￥$元万,\s]`)

// categoryRule maps keyword hits to a category and suggested name.
// Rules are checked in order; the first hit wins.
type categoryRule struct {
	keywords []string
	category domain.Category
	name     string
}

var categoryRules = []categoryRule{
	{[]string{"余额宝", "yu'e bao", "yuebao"}, domain.CategoryFund, "Yu'e Bao"},
	{[]string{"理财通"}, domain.CategoryFund, "WeChat wealth"},
	{[]string{"支付宝", "alipay"}, domain.CategoryCash, "Alipay balance"},
	{[]string{"微信", "零钱", "wechat"}, domain.CategoryCash, "WeChat balance"},
	{[]string{"银行", "存款", "储蓄", "bank", "deposit", "savings"}, domain.CategoryDeposit, "Bank deposit"},
	{[]string{"股票", "证券", "沪深", "上证", "深证", "stock", "securities"}, domain.CategoryStock, "Stock holdings"},
	{[]string{"基金", "理财", "投资", "fund", "wealth management"}, domain.CategoryFund, "Fund holdings"},
	{[]string{"房产", "房屋", "住宅", "房", "apartment", "house", "property"}, domain.CategoryRealEstate, "Real estate"},
	{[]string{"汽车", "车辆", "车", "car", "vehicle"}, domain.CategoryVehicle, "Car"},
	{[]string{"手机", "iphone", "华为", "小米", "phone"}, domain.CategoryOther, "Phone"},
	{[]string{"电脑", "笔记本", "macbook", "laptop"}, domain.CategoryOther, "Laptop"},
	{[]string{"淘宝", "天猫", "京东", "拼多多", "taobao", "jd.com"}, domain.CategoryOther, "Online order"},
}

var bankNames = []string{
	"工商银行", "建设银行", "农业银行", "中国银行", "招商银行",
	"交通银行", "浦发银行", "民生银行", "兴业银行", "平安银行",
}

// LocalAnalyzer is the keyword/regex fallback used whenever the AI
// extraction is unavailable. It is total: it always produces a draft.
type LocalAnalyzer struct{}

func (LocalAnalyzer) AnalyzeText(_ context.Context, text string) (*AssetDraft, error) {
	draft := &AssetDraft{
		Amount: extractAmount(text),
		Remark: remarkFrom(text),
		Source: "local",
	}
	draft.Category, draft.Name = classify(text)
	return draft, nil
}

// extractAmount picks the largest monetary figure in the text. Currency
// symbols, 元 and the 万 (x10000) unit are understood.
func extractAmount(text string) decimal.Decimal {
	best := decimal.Zero
	for _, p := range amountPatterns {
		for _, match := range p.re.FindAllString(text, -1) {
			numStr := amountStripRe.ReplaceAllString(match, "")
			n, err := decimal.NewFromString(numStr)
			if err != nil || n.LessThanOrEqual(decimal.Zero) {
				continue
			}
			n = n.Mul(p.multiplier)
			if n.GreaterThan(best) {
				best = n
			}
		}
	}
	return best
}

func classify(text string) (domain.Category, string) {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			if rule.category == domain.CategoryDeposit {
				for _, bank := range bankNames {
					if strings.Contains(text, bank) {
						return rule.category, bank + "存款"
					}
				}
			}
			return rule.category, rule.name
		}
	}
	if name := firstPlausibleName(text); name != "" {
		return domain.CategoryOther, name
	}
	return domain.CategoryOther, "Unknown asset"
}

var nameSplitRe = regexp.MustCompile(`[\s\n\r\t，。；：！？【】（）()]+`)
var digitsOnlyRe = regexp.MustCompile(`^\d+$`)
var priceSymbolRe = regexp.MustCompile(`^[¥￥$]`)

// firstPlausibleName picks the first short word that is not a number or a
// price, as a last-resort product name.
func firstPlausibleName(text string) string {
	for _, word := range nameSplitRe.Split(text, -1) {
		runes := []rune(word)
		if len(runes) < 2 || len(runes) > 10 {
			continue
		}
		if digitsOnlyRe.MatchString(word) || priceSymbolRe.MatchString(word) {
			continue
		}
		return word
	}
	return ""
}

func remarkFrom(text string) string {
	trimmed := strings.Join(strings.Fields(text), " ")
	runes := []rune(trimmed)
	if len(runes) > 100 {
		return string(runes[:100]) + "..."
	}
	return trimmed
}
