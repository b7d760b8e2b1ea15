package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	valid "github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	esTrans "github.com/go-playground/validator/v10/translations/es"

	"oroweb/pkg/logger"
)

// gin binding校验器的翻译初始化，错误信息优先取字段上的label标签

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 按配置语言初始化一次翻译器
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*valid.Validate)
		if !ok {
			logger.Warnf("gin validator engine not available")
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			if label := field.Tag.Get("label"); label != "" {
				return label
			}
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		enLoc := en.New()
		esLoc := es.New()
		uni := ut.New(enLoc, enLoc, esLoc)

		var err error
		switch language {
		case "es":
			trans, _ = uni.GetTranslator("es")
			err = esTrans.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			err = enTrans.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			logger.Warnf("register validator translations: %v", err)
		}
	})
}

// Translate 把校验错误翻译成一条对外的提示
func Translate(err error) string {
	errs, ok := err.(valid.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Translate(trans))
	}
	return strings.Join(parts, "; ")
}
