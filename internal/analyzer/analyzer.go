package analyzer

import (
	"encoding/json"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Analyzer 单项能力的统一契约
// AnalyzeWithSignals 等价于先算基础 SubScore，再用抓取信号做有界的确定性修正
// 分析器本身不做持久化、不发网络请求，抓取由上层的 fetcher 负责
type Analyzer interface {
	Analyze(productURL string) SubScore
	AnalyzeWithSignals(productURL string, signals Signals) SubScore
}

// SubScore 单项分析结果，score 0-100，Details 为各分析器自己的元数据
type SubScore struct {
	Score   int
	Details map[string]interface{}
}

// MarshalJSON 序列化为 {"score":n, ...details} 的扁平结构
func (s SubScore) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(s.Details)+1)
	for k, v := range s.Details {
		flat[k] = v
	}
	flat["score"] = s.Score
	return json.Marshal(flat)
}

func (s *SubScore) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if v, ok := asInt(flat["score"]); ok {
		s.Score = v
	}
	delete(flat, "score")
	s.Details = flat
	return nil
}

// Signals 抓取到的尽力而为信号，缺字段就跳过对应修正
type Signals map[string]interface{}

// Int 读取整数信号，兼容 JSON 反序列化出来的 float64
func (s Signals) Int(key string) (int, bool) {
	if s == nil {
		return 0, false
	}
	return asInt(s[key])
}

func (s Signals) String(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s[key].(string)
	return v, ok
}

func (s Signals) Bool(key string) (bool, bool) {
	if s == nil {
		return false, false
	}
	v, ok := s[key].(bool)
	return v, ok
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// blendScore 外部近似分与基础分取算术平均，四舍五入
func blendScore(base, approx int) int {
	return int(math.Round(float64(base+approx) / 2))
}

// estimateFakeCount 按 total×(100−authenticityRate)/100 推算，下限 0
func estimateFakeCount(total, authenticityRate int) int {
	n := int(math.Round(float64(total) * float64(100-authenticityRate) / 100))
	if n < 0 {
		return 0
	}
	return n
}

// lockedRand 可注入的随机源，多个 worker 共用时需要加锁
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(r *rand.Rand) *lockedRand {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &lockedRand{r: r}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
