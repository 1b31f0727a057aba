package i18n

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })

	assert.Equal(t, "expected number, received string", T("invalid_type", map[string]string{"expected": "number", "received": "string"}))
	assert.Equal(t, "invalid type", T("invalid_type", nil))

	SetLanguage("ja")
	assert.Equal(t, "型が不正です", T("invalid_type", nil))
	assert.Equal(t, "未知のキー 'x' です", T("unknown_key", map[string]string{"key": "x"}))
}

func TestTranslator_UndefinedIsRequired(t *testing.T) {
	assert.Equal(t, "required", T("invalid_type", map[string]string{"expected": "string", "received": "undefined"}))
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	assert.Equal(t, "my_code", T("my_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "E:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	assert.Equal(t, "E:custom", T("custom", nil))
	SetTranslator(nil)
	assert.Equal(t, "invalid input", T("custom", nil))
}

func TestSetLanguage_ConcurrentWithLookups(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if (i+j)%2 == 0 {
					SetLanguage("ja")
				} else {
					SetLanguage("en")
				}
				assert.NotEmpty(t, T("too_deep", nil))
			}
		}(i)
	}
	wg.Wait()
}
