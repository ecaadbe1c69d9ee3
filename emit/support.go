package emit

// supportModuleSource is the one hand-written (not IR-driven) Rust source
// file every generated project carries: the runtime-policy helpers spec
// §4.5 requires verbatim panic-message wording for. Expression emission
// calls into this module (`crate::support::...`) instead of inlining the
// bounds-check/parse/division logic at every call site, the same way the
// checker and emitter share one type pretty-printer (§3.5) rather than
// letting the wording drift between call sites.
func supportModuleSource() string {
	return fileHeader() + `//
// Runtime-policy helpers: every panic message and Result::Err wording an
// emitted program can produce at runtime lives here, once, so the wording
// specified is never duplicated (and never drifts) across call sites.

pub fn checked_div_i64(a: i64, b: i64) -> i64 {
    if b == 0 {
        panic!("` + msgZeroDivision + `");
    }
    a / b
}

pub fn checked_div_f64(a: f64, b: f64) -> f64 {
    if b == 0.0 {
        panic!("` + msgZeroDivision + `");
    }
    a / b
}

pub fn checked_mod_i64(a: i64, b: i64) -> i64 {
    if b == 0 {
        panic!("` + msgZeroDivision + `");
    }
    ((a % b) + b) % b
}

pub fn checked_mod_f64(a: f64, b: f64) -> f64 {
    if b == 0.0 {
        panic!("` + msgZeroDivision + `");
    }
    ((a % b) + b) % b
}

pub fn normalize_index(i: i64, len: usize) -> usize {
    let idx = if i < 0 { i + len as i64 } else { i };
    if idx < 0 || idx as usize >= len {
        panic!("` + msgIndexOutOfBounds + `", i, len);
    }
    idx as usize
}

pub fn checked_index<T: Clone>(xs: &[T], i: i64) -> T {
    xs[normalize_index(i, xs.len())].clone()
}

// String is not a slice of a fixed-width element, so indexing and slicing
// it walks its chars() rather than going through the generic &[T] path:
// collecting to a Vec<char> keeps multi-byte characters intact and lets
// both operations share checked_index/checked_slice's bounds logic.
pub fn checked_index_str(s: &str, i: i64) -> String {
    let chars: Vec<char> = s.chars().collect();
    checked_index(&chars, i).to_string()
}

pub fn checked_slice<T: Clone>(xs: &[T], low: Option<i64>, high: Option<i64>, step: i64) -> Vec<T> {
    if step == 0 {
        panic!("` + msgSliceStepZero + `");
    }
    let len = xs.len() as i64;
    let norm = |v: i64| -> i64 {
        let v = if v < 0 { v + len } else { v };
        v.clamp(0, len)
    };
    let lo = norm(low.unwrap_or(0));
    let hi = norm(high.unwrap_or(len));
    let mut out = Vec::new();
    if step > 0 {
        let mut i = lo;
        while i < hi {
            out.push(xs[i as usize].clone());
            i += step;
        }
    } else {
        let mut i = hi - 1;
        while i >= lo {
            out.push(xs[i as usize].clone());
            i += step;
        }
    }
    out
}

pub fn checked_slice_str(s: &str, low: Option<i64>, high: Option<i64>, step: i64) -> String {
    let chars: Vec<char> = s.chars().collect();
    checked_slice(&chars, low, high, step).into_iter().collect()
}

pub fn dict_get<K: std::hash::Hash + Eq + std::fmt::Display + Clone, V: Clone>(
    m: &std::collections::HashMap<K, V>,
    k: &K,
) -> V {
    match m.get(k) {
        Some(v) => v.clone(),
        None => panic!("` + msgKeyMissing + `", k),
    }
}

pub fn parse_int(s: &str) -> i64 {
    s.trim().parse::<i64>().unwrap_or_else(|_| {
        panic!("` + msgParseFailure + `", s, "int");
    })
}

pub fn parse_float(s: &str) -> f64 {
    s.trim().parse::<f64>().unwrap_or_else(|_| {
        panic!("` + msgParseFailure + `", s, "float");
    })
}

pub fn json_parse<T: serde::de::DeserializeOwned>(s: &str) -> Result<T, String> {
    serde_json::from_str(s).map_err(|e| format!("` + msgJSONDecodeFail + `", e))
}

pub fn len<T>(xs: &[T]) -> i64 {
    xs.len() as i64
}

pub fn range(start: i64, stop: i64) -> Vec<i64> {
    (start..stop).collect()
}

pub fn sum(xs: &[i64]) -> i64 {
    xs.iter().sum()
}

pub fn sum_f64(xs: &[f64]) -> f64 {
    xs.iter().sum()
}

pub fn min(xs: &[i64]) -> i64 {
    *xs.iter().min().expect("min() called on an empty sequence")
}

pub fn min_f64(xs: &[f64]) -> f64 {
    xs.iter().cloned().fold(f64::INFINITY, f64::min)
}

pub fn max(xs: &[i64]) -> i64 {
    *xs.iter().max().expect("max() called on an empty sequence")
}

pub fn max_f64(xs: &[f64]) -> f64 {
    xs.iter().cloned().fold(f64::NEG_INFINITY, f64::max)
}

pub fn abs(x: i64) -> i64 {
    x.abs()
}

pub fn abs_f64(x: f64) -> f64 {
    x.abs()
}

pub fn sorted<T: Ord + Clone>(xs: &[T]) -> Vec<T> {
    let mut out = xs.to_vec();
    out.sort();
    out
}

pub fn reversed<T: Clone>(xs: &[T]) -> Vec<T> {
    xs.iter().rev().cloned().collect()
}

pub fn enumerate<T: Clone>(xs: &[T]) -> Vec<(i64, T)> {
    xs.iter().cloned().enumerate().map(|(i, v)| (i as i64, v)).collect()
}

pub fn zip<A: Clone, B: Clone>(xs: &[A], ys: &[B]) -> Vec<(A, B)> {
    xs.iter().cloned().zip(ys.iter().cloned()).collect()
}

pub fn to_str<T: std::fmt::Display>(v: T) -> String {
    v.to_string()
}

pub fn to_bool(v: i64) -> bool {
    v != 0
}

pub fn map_fn<T, R>(f: impl Fn(&T) -> R, xs: &[T]) -> Vec<R> {
    xs.iter().map(f).collect()
}

pub fn filter_fn<T: Clone>(f: impl Fn(&T) -> bool, xs: &[T]) -> Vec<T> {
    xs.iter().filter(|x| f(x)).cloned().collect()
}
`
}
