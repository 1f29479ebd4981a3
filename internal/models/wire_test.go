package models

import (
	"errors"
	"testing"
)

const sampleRequest = `{
	"key": "secret",
	"payload": {
		"time": 1700000000123,
		"machine": "web-01",
		"statsFloat32": [
			{"statName": "cpu_usage_percentage", "statValue": 60.6, "quality": 0},
			{"statName": "available_memory_mbytes", "statValue": 9, "quality": 4}
		],
		"statsInt32": [
			{"statName": "process_count", "statValue": 312, "quality": 0}
		],
		"extra": {"ignored": [1, 2, 3]}
	}
}`

func TestSendStatsSampleRequestUnmarshal(t *testing.T) {
	var req SendStatsSampleRequest
	if err := req.UnmarshalJSON([]byte(sampleRequest)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}

	if req.Key != "secret" {
		t.Errorf("Key = %q, want secret", req.Key)
	}
	p := req.Payload
	if p.Time != 1700000000123 || p.Machine != "web-01" {
		t.Errorf("unexpected header: time=%d machine=%q", p.Time, p.Machine)
	}
	if len(p.StatsFloat32) != 2 || len(p.StatsInt32) != 1 {
		t.Fatalf("unexpected sample counts: %d float, %d int", len(p.StatsFloat32), len(p.StatsInt32))
	}
	if p.StatsFloat32[0].StatValue != 60.6 || p.StatsFloat32[1].Quality != QualityInvalid {
		t.Errorf("unexpected float samples: %+v", p.StatsFloat32)
	}
	if p.StatsInt32[0].StatValue != 312 {
		t.Errorf("unexpected int sample: %+v", p.StatsInt32[0])
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestUnmarshalRejectsBrokenJSON(t *testing.T) {
	inputs := []string{
		``,
		`{"key": "k", "payload": {"time": "yesterday"}}`,
		`{"key": "k", "payload": {"statsInt32": [{"statValue": 1.5}]}}`,
		`{"key": "k", "payload": `,
	}
	for _, in := range inputs {
		var req SendStatsSampleRequest
		if err := req.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestStatusResponseMarshal(t *testing.T) {
	data, err := StatusResponse{Status: true}.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `{"status":true}` {
		t.Errorf("got %s", data)
	}
}

func TestValidate(t *testing.T) {
	good := func() StatsSample {
		return StatsSample{
			Time:         1,
			Machine:      "m1",
			StatsFloat32: []StatEntryFloat32{{StatName: "cpu", StatValue: 1, Quality: QualityGood}},
			StatsInt32:   []StatEntryInt32{{StatName: "procs", StatValue: 1, Quality: QualityError}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *StatsSample)
		wantErr bool
	}{
		{name: "valid", mutate: func(*StatsSample) {}},
		{name: "only ints", mutate: func(s *StatsSample) { s.StatsFloat32 = nil }},
		{name: "empty machine", mutate: func(s *StatsSample) { s.Machine = "" }, wantErr: true},
		{name: "no samples", mutate: func(s *StatsSample) { s.StatsFloat32, s.StatsInt32 = nil, nil }},
		{name: "empty float name", mutate: func(s *StatsSample) { s.StatsFloat32[0].StatName = "" }, wantErr: true},
		{name: "unknown int quality", mutate: func(s *StatsSample) { s.StatsInt32[0].Quality = 3 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := good()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("error must wrap ErrMalformedPayload: %v", err)
			}
		})
	}
}

func TestCopyToReusesPackage(t *testing.T) {
	p := &StatsPackage{
		Machine:      "stale",
		FloatSamples: []SampleValue[float32]{{Name: "old", Value: 1}, {Name: "old2", Value: 2}},
	}

	s := StatsSample{
		Time:         42,
		Machine:      "m1",
		StatsFloat32: []StatEntryFloat32{{StatName: "cpu", StatValue: 5, Quality: QualityGood}},
		StatsInt32:   []StatEntryInt32{{StatName: "procs", StatValue: 7, Quality: QualityInvalid}},
	}
	s.CopyTo(p)

	if p.TimestampMillis != 42 || p.Machine != "m1" {
		t.Errorf("unexpected header: %+v", p)
	}
	if len(p.FloatSamples) != 1 || p.FloatSamples[0].Name != "cpu" {
		t.Errorf("stale samples leaked: %+v", p.FloatSamples)
	}
	if len(p.IntSamples) != 1 || p.IntSamples[0].Value != 7 || p.IntSamples[0].Quality != QualityInvalid {
		t.Errorf("unexpected int samples: %+v", p.IntSamples)
	}
	if p.SampleCount() != 2 {
		t.Errorf("SampleCount() = %d, want 2", p.SampleCount())
	}

	p.Reset()
	if p.Machine != "" || p.SampleCount() != 0 || cap(p.FloatSamples) == 0 {
		t.Errorf("Reset must clear data and keep capacity: %+v", p)
	}
}

func TestNewAuditEvent(t *testing.T) {
	s := StatsSample{
		Machine:      "m1",
		StatsFloat32: []StatEntryFloat32{{StatName: "cpu"}},
		StatsInt32:   []StatEntryInt32{{StatName: "procs"}},
	}
	ev := NewAuditEvent(100, &s, "10.0.0.1")

	data, err := ev.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"ts":100,"machine":"m1","metrics":["cpu","procs"],"ip_address":"10.0.0.1"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestQualityString(t *testing.T) {
	tests := map[Quality]string{
		QualityGood:    "good",
		QualityInvalid: "invalid",
		QualityError:   "error",
		QualityUnknown: "unknown",
		Quality(5):     "quality(5)",
	}
	for q, want := range tests {
		if got := q.String(); got != want {
			t.Errorf("Quality(%d).String() = %q, want %q", int8(q), got, want)
		}
	}
}
