// Package jsonmethod loads method files in the JSON layout used by the
// ATM method catalogue:
//
//	{
//	  "name": "svm",
//	  "class": "sklearn.svm.SVC",
//	  "root_parameters": ["C", "kernel"],
//	  "parameters": {
//	    "C": {"type": "float_exp", "range": [1e-05, 100000]},
//	    "kernel": {"type": "string", "values": ["rbf", "poly"]},
//	    "degree": {"type": "int_cat", "values": [2, 3]}
//	  },
//	  "conditions": {"kernel": {"poly": ["degree"]}}
//	}
//
// Parameters keep the order in which the document lists them. JSON object
// keys are always strings, so condition keys are marked as stringified and
// matched against the string form of the trigger's values.
package jsonmethod
