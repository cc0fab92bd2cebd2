// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses method files written in HCL and translates them into
// the format-agnostic config.Method model.
//
// A file may hold any number of method blocks:
//
//	method "svm" {
//	  class           = "sklearn.svm.SVC"
//	  root_parameters = ["C", "kernel"]
//
//	  parameter "C" {
//	    type  = float_exp
//	    range = [1e-5, 1e5]
//	  }
//	  parameter "kernel" {
//	    type   = string
//	    values = ["rbf", "poly"]
//	  }
//	  parameter "layers" {
//	    type  = list
//	    sizes = [1, 2, 3]
//	    element {
//	      type  = int
//	      range = [2, 300]
//	    }
//	  }
//
//	  condition "kernel" {
//	    when    = "poly"
//	    unlocks = ["degree"]
//	  }
//	}
//
// Condition values keep their HCL type: when = 2 selects the number 2 and
// never the string "2".
package hcl
