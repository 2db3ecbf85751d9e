package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Number は任意項目の数値フィールドです。
// 保存済みドキュメントでは整数・浮動小数点・文字列のいずれも許容し、読めない値は0として扱います。
type Number float64

// UnmarshalBSONValue はBSONの数値型と数値文字列を受け付けます。
// 解釈できない値はエラーにせず0にします。
func (n *Number) UnmarshalBSONValue(typ byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(typ), Value: data}
	switch rv.Type {
	case bson.TypeDouble:
		f, _ := rv.DoubleOK()
		*n = Number(f)
	case bson.TypeInt32:
		i, _ := rv.Int32OK()
		*n = Number(i)
	case bson.TypeInt64:
		i, _ := rv.Int64OK()
		*n = Number(i)
	case bson.TypeDecimal128:
		d, _ := rv.Decimal128OK()
		f, err := strconv.ParseFloat(d.String(), 64)
		if err != nil || !finite(f) {
			f = 0
		}
		*n = Number(f)
	case bson.TypeString:
		s, _ := rv.StringValueOK()
		*n = Number(leadingFloat(s))
	default:
		*n = 0
	}
	return nil
}

// MarshalBSONValue は整数値をint32またはint64として、それ以外をdoubleとして書き込みます。
func (n Number) MarshalBSONValue() (byte, []byte, error) {
	f := float64(n)
	var v any = f
	if finite(f) && f == math.Trunc(f) {
		switch {
		case f >= math.MinInt32 && f <= math.MaxInt32:
			v = int32(f)
		case f >= math.MinInt64 && f < math.MaxInt64:
			v = int64(f)
		}
	}
	t, b, err := bson.MarshalValue(v)
	return byte(t), b, err
}

// UnmarshalJSON は数値と数値文字列を受け付けます。空文字列は0です。
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(f) {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// leadingFloat は文字列先頭の数値部分を返します。数値で始まらない場合は0です。
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || ((r == '-' || r == '+') && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
		end--
	}
	return 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// dateLayouts は文字列から日付を読むときに試す書式です。
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date は任意項目の日付フィールドです。
// BSONの日時型に加え、ISO形式の文字列とエポックミリ秒を受け付けます。
type Date struct {
	time.Time
}

// NewDate はtをDateに変換します。
func NewDate(t time.Time) *Date {
	return &Date{Time: t.UTC()}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// UnmarshalBSONValue はBSONの日時型・文字列・数値を受け付けます。
// 解釈できない値はエラーにせずゼロ値にします。
func (d *Date) UnmarshalBSONValue(typ byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(typ), Value: data}
	d.Time = time.Time{}
	switch rv.Type {
	case bson.TypeDateTime:
		ms, _ := rv.DateTimeOK()
		d.Time = time.UnixMilli(ms).UTC()
	case bson.TypeString:
		s, _ := rv.StringValueOK()
		if t, ok := parseDate(s); ok {
			d.Time = t
		}
	case bson.TypeInt32, bson.TypeInt64, bson.TypeDouble:
		if ms, ok := rv.AsInt64OK(); ok {
			d.Time = time.UnixMilli(ms).UTC()
		}
	}
	return nil
}

// MarshalBSONValue はBSONの日時型として書き込みます。ゼロ値はnullです。
func (d Date) MarshalBSONValue() (byte, []byte, error) {
	if d.IsZero() {
		return byte(bson.TypeNull), nil, nil
	}
	t, b, err := bson.MarshalValue(bson.NewDateTimeFromTime(d.Time))
	return byte(t), b, err
}

// MarshalJSON はRFC 3339形式で書き込みます。ゼロ値はnullです。
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return d.Time.MarshalJSON()
}

// UnmarshalJSON は日付文字列とエポックミリ秒を受け付けます。
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			d.Time = time.Time{}
			return nil
		}
		t, ok := parseDate(s)
		if !ok {
			return fmt.Errorf("invalid date %q", s)
		}
		d.Time = t
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("invalid date %s", data)
	}
	d.Time = time.UnixMilli(ms).UTC()
	return nil
}
