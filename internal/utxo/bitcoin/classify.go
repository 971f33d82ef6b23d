package bitcoin

import "github.com/btcsuite/btcd/txscript"

// ClassifyScript reports the standard form of a locking script.
func ClassifyScript(script []byte) txscript.ScriptClass {
	return txscript.GetScriptClass(script)
}
