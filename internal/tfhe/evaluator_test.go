package tfhe

import "testing"

func TestArithmetic(t *testing.T) {
	params, err := NewParameters(DefaultParametersLiteral())
	if err != nil {
		t.Fatal(err)
	}
	kg := NewKeyGenerator(params)
	sk := kg.GenSecretKey()
	evk := kg.GenEvaluationKey(sk)
	enc := NewEncryptor(params, sk)
	dec := NewDecryptor(params, sk)
	eval := NewEvaluator(params, evk)

	a := enc.EncryptChar('A')
	b := enc.EncryptChar(3)
	sum := eval.Add(a, b)
	if got := dec.DecryptChar(sum); got != 'A'+3 {
		t.Errorf("Add = %v, want %v", got, byte('A'+3))
	}

	lt := eval.ScalarLt(a, 100)
	if !dec.DecryptBool(lt) {
		t.Errorf("ScalarLt('A', 100) = false, want true")
	}

	sel := eval.IfThenElse(NewTrivialBool(true), a, b)
	if got := dec.DecryptChar(sel); got != 'A' {
		t.Errorf("IfThenElse(true,...) = %v, want 'A'", got)
	}
}

func TestExtendTrim(t *testing.T) {
	params, _ := NewParameters(ParametersLiteral{CharBlocks: 2})
	eval := &Evaluator{params: params}
	c := NewTrivialCipher(2, 3)
	wide := eval.Extend(c, 4)
	if wide.Blocks() != 4 {
		t.Errorf("Extend: blocks = %d, want 4", wide.Blocks())
	}
	narrow := eval.Trim(wide, 2)
	if narrow.Blocks() != 2 {
		t.Errorf("Trim: blocks = %d, want 2", narrow.Blocks())
	}
}
