package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gtoxlili/evoTrade/entity"
	"github.com/gtoxlili/evoTrade/logger"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Store 是读取环境变量的唯一入口，加载结果以值的形式交给调用方
type Store struct {
	validate *validator.Validate
	log      zerolog.Logger
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func NewStore(opts ...Option) *Store {
	v := validator.New()
	rules := map[string]validator.Func{
		"exchange": func(fl validator.FieldLevel) bool {
			return entity.Exchange(fl.Field().String()).IsValid()
		},
		"timeframe": func(fl validator.FieldLevel) bool {
			return entity.Timeframe(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// 规则缺失时 validate tag 会在校验阶段 panic，这里提前失败
			panic(fmt.Errorf("config: failed to register %q validation: %w", tag, err))
		}
	}
	// 错误信息中使用环境变量名而不是 Go 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if key := fld.Tag.Get(envTag); key != "" {
			return key
		}
		return fld.Name
	})

	s := &Store{
		validate: v,
		log:      logger.WithComponent("config"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadTradingParameters 只做类型转换，不做范围校验
func (s *Store) LoadTradingParameters() (TradingParameters, error) {
	return process[TradingParameters](s)
}

func (s *Store) LoadEvolutionaryParameters() (EvolutionaryParameters, error) {
	return process[EvolutionaryParameters](s)
}

func (s *Store) LoadRuntimeParameters() (RuntimeParameters, error) {
	return process[RuntimeParameters](s)
}

func process[T any](s *Store) (T, error) {
	var params T
	if err := envconfig.Process("", &params); err != nil {
		var pe *envconfig.ParseError
		if errors.As(err, &pe) {
			s.log.Debug().Str("key", pe.KeyName).Str("value", pe.Value).Msg("coercion failed")
			return lo.Empty[T](), &ConfigurationError{
				Kind:       KindInvalidValue,
				Key:        pe.KeyName,
				Field:      pe.FieldName,
				Value:      pe.Value,
				Constraint: describeType(pe.TypeName),
				Err:        pe.Err,
			}
		}
		return lo.Empty[T](), fmt.Errorf("failed to process %T: %w", params, err)
	}
	return params, nil
}

func describeType(typeName string) string {
	switch typeName {
	case "config.Decimal", "float32", "float64":
		return "must be a decimal number"
	case "config.Count", "int", "int8", "int16", "int32", "int64":
		return "must be a base-10 integer"
	case "entity.Exchange":
		return "must be one of " + joinMembers(entity.Exchanges())
	case "entity.Timeframe":
		return "must be one of " + joinMembers(entity.Timeframes())
	default:
		return "must be a valid " + typeName
	}
}

func joinMembers[T ~string](members []T) string {
	return strings.Join(lo.Map(members, func(m T, _ int) string { return string(m) }), ", ")
}

// Validate 检查参数组的取值约束，所有违规项通过 errors.Join 一起返回。
// params 可以是值或指针，不会被修改。
func (s *Store) Validate(params any) error {
	err := s.validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %T: %w", params, err)
	}

	structType := reflect.Indirect(reflect.ValueOf(params)).Type()
	errs := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) error {
		return &ConfigurationError{
			Kind:       KindOutOfRange,
			Key:        fe.Field(),
			Field:      fe.StructField(),
			Value:      fmt.Sprint(fe.Value()),
			Constraint: describeConstraint(structType, fe),
		}
	})
	return errors.Join(errs...)
}

func describeConstraint(structType reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "ltefield":
		other := fe.Param()
		if f, ok := structType.FieldByName(other); ok && f.Tag.Get(envTag) != "" {
			other = f.Tag.Get(envTag)
		}
		return "must be <= " + other
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "exchange":
		return "must be one of " + joinMembers(entity.Exchanges())
	case "timeframe":
		return "must be one of " + joinMembers(entity.Timeframes())
	default:
		return "violates " + fe.Tag()
	}
}

// Load 加载并校验全部配置组，任一组失败都不会返回部分配置
func (s *Store) Load() (Settings, error) {
	var errs []error
	collect := func(params any, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		if err := s.Validate(params); err != nil {
			errs = append(errs, err)
		}
	}

	trading, err := s.LoadTradingParameters()
	collect(trading, err)
	evolution, err := s.LoadEvolutionaryParameters()
	collect(evolution, err)
	runtime, err := s.LoadRuntimeParameters()
	collect(runtime, err)

	if len(errs) > 0 {
		s.log.Error().Int("errors", len(errs)).Msg("configuration rejected")
		return lo.Empty[Settings](), errors.Join(errs...)
	}

	settings := Settings{Trading: trading, Evolution: evolution, Runtime: runtime}
	s.log.Debug().
		Str("exchange", trading.Exchange.String()).
		Str("timeframe", trading.Timeframe.String()).
		Int("population_size", evolution.PopulationSize.Int()).
		Str("environment", runtime.Environment).
		Msg("configuration loaded")
	return settings, nil
}
