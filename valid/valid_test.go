package valid_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gqlfed/federation-planner/valid"
)

func TestSucceedToResult(t *testing.T) {
	v, err := valid.Succeed(42).ToResult()
	if err != nil {
		t.Fatalf("ToResult failed: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestFailToResult(t *testing.T) {
	_, err := valid.Fail[int]("boom").ToResult()
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Causes()) != 1 {
		t.Fatalf("expected 1 cause, got %d", len(err.Causes()))
	}
	if err.Causes()[0].Message != "boom" {
		t.Errorf("expected cause 'boom', got %q", err.Causes()[0].Message)
	}
}

func TestFromOption(t *testing.T) {
	value := "hello"
	if got, err := valid.FromOption(&value, "missing").ToResult(); err != nil || got != "hello" {
		t.Errorf("expected hello, got %q (%v)", got, err)
	}

	if _, err := valid.FromOption[string](nil, "missing").ToResult(); err == nil {
		t.Error("expected failure for nil option")
	}
}

func TestFromResult(t *testing.T) {
	if got, err := valid.FromResult(7, nil).ToResult(); err != nil || got != 7 {
		t.Errorf("expected 7, got %d (%v)", got, err)
	}

	if _, err := valid.FromResult(0, errors.New("bad")).ToResult(); err == nil {
		t.Error("expected failure")
	}
}

func TestAndThenShortCircuits(t *testing.T) {
	called := false
	result := valid.AndThen(valid.Fail[int]("first"), func(int) valid.Valid[int] {
		called = true
		return valid.Fail[int]("second")
	})

	if called {
		t.Error("AndThen must not run the continuation after a failure")
	}
	_, err := result.ToResult()
	if len(err.Causes()) != 1 {
		t.Errorf("expected 1 cause, got %d", len(err.Causes()))
	}
}

func TestZipAccumulates(t *testing.T) {
	a := valid.Fail[int]("left")
	b := valid.Fail[string]("right")

	_, err := valid.Zip(a, b, func(int, string) struct{} { return struct{}{} }).ToResult()
	if err == nil {
		t.Fatal("expected failure")
	}

	want := []string{"left", "right"}
	got := make([]string, 0, len(err.Causes()))
	for _, cause := range err.Causes() {
		got = append(got, cause.Message)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("causes mismatch (-want +got):\n%s", diff)
	}
}

func TestFuseAccumulates(t *testing.T) {
	_, err := valid.Fuse(
		valid.Succeed(1),
		valid.Fail[int]("a"),
		valid.Fail[int]("b"),
		valid.Succeed(2),
	).ToResult()
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(err.Causes()) != 2 {
		t.Errorf("expected 2 causes, got %d", len(err.Causes()))
	}

	values, verr := valid.Fuse(valid.Succeed(1), valid.Succeed(2)).ToResult()
	if verr != nil {
		t.Fatalf("Fuse failed: %v", verr)
	}
	if diff := cmp.Diff([]int{1, 2}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

// Given N lookups of which K fail, exactly K causes come back.
func TestFromIterAccumulatesAllFailures(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	result := valid.FromIter(items, func(i int) valid.Valid[int] {
		if i%2 == 0 {
			return valid.Fail[int]("even " + strconv.Itoa(i))
		}
		return valid.Succeed(i)
	})

	_, err := result.ToResult()
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(err.Causes()) != 3 {
		t.Fatalf("expected 3 causes, got %d", len(err.Causes()))
	}

	want := []string{"even 2", "even 4", "even 6"}
	for i, cause := range err.Causes() {
		if cause.Message != want[i] {
			t.Errorf("cause %d: expected %q, got %q", i, want[i], cause.Message)
		}
	}
}

func TestTracePrepends(t *testing.T) {
	v := valid.Fail[int]("oops").Trace("inner").Trace("outer")
	_, err := v.ToResult()
	if err == nil {
		t.Fatal("expected failure")
	}
	if diff := cmp.Diff([]string{"outer", "inner"}, err.Causes()[0].Trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorFormatting(t *testing.T) {
	err := valid.NewError(
		valid.NewCause("1").WithTrace("a", "b"),
		valid.NewCause("2"),
		valid.NewCause("3"),
	)

	want := strings.Join([]string{
		"Validation Error",
		"• 1 [a, b]",
		"• 2",
		"• 3",
		"",
	}, "\n")
	if err.Error() != want {
		t.Errorf("formatting mismatch:\nwant %q\ngot  %q", want, err.Error())
	}
}
