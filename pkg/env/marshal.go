package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ToMap reflects over a config struct and collects non-zero fields keyed by
// their env tag.
func ToMap(c any) (map[string]string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("env: expected struct, got %s", v.Kind())
	}
	t := v.Type()

	out := make(map[string]string)
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		// "KEY,required,notEmpty" -> "KEY"
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}
		out[key] = formatValue(val)
	}
	return out, nil
}

// MarshalEnv renders a config struct as .env content.
func MarshalEnv(c any) (string, error) {
	m, err := ToMap(c)
	if err != nil {
		return "", err
	}
	if len(m) == 0 {
		return "", nil
	}
	content, err := godotenv.Marshal(m)
	if err != nil {
		return "", err
	}
	return content + "\n", nil
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
