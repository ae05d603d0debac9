package events

import (
	"errors"
	"testing"
)

type recorder struct {
	subjects []string
	err      error
}

func (r *recorder) Publish(subject string, _ any) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Publish(SubjectDocumentUpdated, nil); err != nil {
		t.Errorf("Nop returned %v", err)
	}
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi{a, nil, b}
	if err := m.Publish(SubjectAnalysisCompleted, AnalysisEvent{ID: "1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(a.subjects) != 1 || len(b.subjects) != 1 || a.subjects[0] != SubjectAnalysisCompleted {
		t.Errorf("a=%v b=%v", a.subjects, b.subjects)
	}
}

func TestMulti_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &recorder{}
	m := Multi{&recorder{err: boom}, ok}
	err := m.Publish(SubjectDocumentDeleted, nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if len(ok.subjects) != 1 {
		t.Error("later sinks should still receive the event")
	}
}

func TestQualify(t *testing.T) {
	if got := qualify("", "analysis.completed"); got != "analysis.completed" {
		t.Errorf("got %q", got)
	}
	if got := qualify("moodlog", "analysis.completed"); got != "moodlog.analysis.completed" {
		t.Errorf("got %q", got)
	}
}

func TestDocumentSubject(t *testing.T) {
	cases := map[string]string{
		"created": SubjectDocumentUpdated,
		"updated": SubjectDocumentUpdated,
		"deleted": SubjectDocumentDeleted,
	}
	for kind, want := range cases {
		if got := DocumentSubject(kind); got != want {
			t.Errorf("DocumentSubject(%q) = %q, want %q", kind, got, want)
		}
	}
}
