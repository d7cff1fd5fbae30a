package event

import (
	"reflect"
)

var (
	tagToKind     = make(map[string]Kind)
	kindToTag     = make(map[Kind]string)
	kindToPayload = make(map[Kind]reflect.Type)
)

func init() {
	RegisterTag("BUT", KindButton, &ButtonEvent{})
	RegisterTag("MOV", KindMotion, &MotionEvent{})
	RegisterTag("KEY", KindKey, &KeyEvent{})
	RegisterTag("WHE", KindWheel, &WheelEvent{})
}

// RegisterTag maps a three letter record tag to a Kind and its payload type.
// payloadInstance should be a pointer to the payload struct.
func RegisterTag(tag string, k Kind, payloadInstance any) {
	tagToKind[tag] = k
	kindToTag[k] = tag
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		kindToPayload[k] = t
	}
}

// KindOf returns the Kind for a record tag
func KindOf(tag string) (Kind, bool) {
	k, ok := tagToKind[tag]
	return k, ok
}

// TagOf returns the record tag for a Kind, empty when unregistered
func TagOf(k Kind) string {
	return kindToTag[k]
}

// NewPayload returns a pointer to a zero payload struct for k, nil when none
// is registered
func NewPayload(k Kind) any {
	t, ok := kindToPayload[k]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

func (k Kind) String() string {
	if tag, ok := kindToTag[k]; ok {
		return tag
	}
	return "NONE"
}
