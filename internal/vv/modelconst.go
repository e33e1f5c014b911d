//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	LDALOWK          = 4 // the sweep never evaluates below this
	LDAHIGHK         = 10
	LDASEED          = 66826
	LDAITER          = 200
	LDAXFORMPASSES   = 100
	LDABURNINPASSES  = 2
	LDACHGEVALFRQ    = 10
	LDAPERPEVALFRQ   = 10
	LDAPERPTOL       = 1e-2
	LDATOPN          = 3
	LDAQUALITYFLOOR  = 0.50
	LDACOHERENCE     = "c_v"
	LDACOHERENCETOPN = 10
	LDAWORDCLOUDTOPN = 20
	WINDOWDAYS       = 15
	SAMPLETESTSIZE   = 0.25
	SAMPLESEED       = 42
	MODELFILETMPL    = "lda_model_%s.json.gz"
	MATRIXFILETMPL   = "%s_topic_matrix"
	TOPTWEETSTMPL    = "top_tweets_%s"
	KCHARTTMPL       = "%s_k_topics.html"
	WORDCLOUDTMPL    = "word_cloud_%s.html"
	DOCTOPICSTMPL    = "%s_doc_topics"
)
